package roomid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectCommutative(t *testing.T) {
	pairs := [][2]uint{{3, 7}, {7, 3}, {1, 2}, {2, 1}, {10, 10000}, {42, 42}}
	for _, p := range pairs {
		assert.Equal(t, Direct(p[0], p[1]), Direct(p[1], p[0]))
	}
}

func TestDirectDeterministic(t *testing.T) {
	assert.Equal(t, "3-7", Direct(3, 7))
	assert.Equal(t, "3-7", Direct(7, 3))
	assert.Equal(t, "1-2", Direct(2, 1))
}

func TestDirectCollisionFree(t *testing.T) {
	// Sum-and-truncate schemes collide (e.g. 1+9 and 4+6); the sorted-pair
	// encoding must not.
	seen := make(map[string][2]uint)
	for a := uint(1); a <= 50; a++ {
		for b := a + 1; b <= 50; b++ {
			id := Direct(a, b)
			if prev, ok := seen[id]; ok {
				t.Fatalf("room id %q produced by both %v and %v", id, prev, [2]uint{a, b})
			}
			seen[id] = [2]uint{a, b}
		}
	}
}

func TestParticipants(t *testing.T) {
	a, b, ok := Participants(Direct(7, 3))
	require.True(t, ok)
	assert.Equal(t, uint(3), a)
	assert.Equal(t, uint(7), b)

	_, _, ok = Participants("not-a-room-id")
	assert.False(t, ok)

	_, _, ok = Participants("37")
	assert.False(t, ok)
}
