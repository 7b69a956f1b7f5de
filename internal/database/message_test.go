package database

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/pselivanov/errandchat/internal/models"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()

	d := &Database{}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	require.NoError(t, d.Open(sqlite.Open(dsn)))
	return d
}

func TestGetOrCreateMessageLogIdempotent(t *testing.T) {
	d := newTestDB(t)

	first, err := d.GetOrCreateMessageLog("3-7")
	require.NoError(t, err)

	second, err := d.GetOrCreateMessageLog("3-7")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreateMessageLogConcurrent(t *testing.T) {
	d := newTestDB(t)

	const workers = 20
	var wg sync.WaitGroup
	ids := make(chan uint, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			entry, err := d.GetOrCreateMessageLog("3-7")
			assert.NoError(t, err)
			ids <- entry.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1, "concurrent get-or-create must converge on one log")

	var count int64
	require.NoError(t, d.db.Model(&models.MessageLog{}).Where("room_id = ?", "3-7").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAppendChatMessageOrdering(t *testing.T) {
	d := newTestDB(t)

	_, err := d.GetOrCreateMessageLog("1-2")
	require.NoError(t, err)

	contents := []string{"first", "second", "third"}
	for _, content := range contents {
		msg := &models.ChatMessage{
			RoomID:         "1-2",
			SenderID:       1,
			SenderUsername: "alice",
			Content:        content,
			Timestamp:      time.Now(),
		}
		require.NoError(t, d.AppendChatMessage(msg))
	}

	history, err := d.MessageHistory("1-2")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, content := range contents {
		assert.Equal(t, content, history[i].Content)
		assert.Equal(t, "alice", history[i].SenderUsername)
	}

	last, err := d.LastChatMessage("1-2")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "third", last.Content)
}

func TestMessageHistoryEmptyRoom(t *testing.T) {
	d := newTestDB(t)

	history, err := d.MessageHistory("9-12")
	require.NoError(t, err)
	assert.Empty(t, history)

	last, err := d.LastChatMessage("9-12")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestCreateChatPairIdempotent(t *testing.T) {
	d := newTestDB(t)

	require.NoError(t, d.CreateChatPair(1, 2, "1-2"))
	require.NoError(t, d.CreateChatPair(1, 2, "1-2"))

	mine, err := d.ChatEntriesFor(1)
	require.NoError(t, err)
	theirs, err := d.ChatEntriesFor(2)
	require.NoError(t, err)

	require.Len(t, mine, 1)
	require.Len(t, theirs, 1)
	assert.Equal(t, "1-2", mine[0].RoomID)
	assert.Equal(t, "1-2", theirs[0].RoomID)
	assert.Equal(t, uint(2), mine[0].PeerID)
	assert.Equal(t, uint(1), theirs[0].PeerID)
}
