package roomid

import (
	"strconv"
	"strings"
)

// Direct derives the room id for a direct chat between two users.
// The result is the same regardless of argument order, and distinct
// user pairs never map to the same id.
func Direct(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(a), 10))
	sb.WriteByte('-')
	sb.WriteString(strconv.FormatUint(uint64(b), 10))
	return sb.String()
}

// Participants parses a direct room id back into the two user ids.
func Participants(roomID string) (uint, uint, bool) {
	left, right, ok := strings.Cut(roomID, "-")
	if !ok {
		return 0, 0, false
	}
	a, err := strconv.ParseUint(left, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.ParseUint(right, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return uint(a), uint(b), true
}
