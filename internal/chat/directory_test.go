package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/pselivanov/errandchat/internal/database"
	"github.com/pselivanov/errandchat/internal/models"
)

func newTestDirectory(t *testing.T) (*Directory, *database.Database) {
	t.Helper()

	d := &database.Database{}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	require.NoError(t, d.Open(sqlite.Open(dsn)))
	return NewDirectory(d), d
}

func createUser(t *testing.T, d *database.Database, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, d.SaveUser(user))
	return user
}

func TestOpenChatSymmetric(t *testing.T) {
	dir, db := newTestDirectory(t)

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")

	roomID, err := dir.OpenChat(alice.ID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d-%d", alice.ID, bob.ID), roomID)

	mine, err := db.FindChatEntry(alice.ID, bob.ID)
	require.NoError(t, err)
	theirs, err := db.FindChatEntry(bob.ID, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, roomID, mine.RoomID)
	assert.Equal(t, roomID, theirs.RoomID)
}

func TestOpenChatIdempotent(t *testing.T) {
	dir, db := newTestDirectory(t)

	alice := createUser(t, db, "alice", "alice@example.com")
	createUser(t, db, "bob", "bob@example.com")

	first, err := dir.OpenChat(alice.ID, "bob@example.com")
	require.NoError(t, err)
	second, err := dir.OpenChat(alice.ID, "bob@example.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	entries, err := db.ChatEntriesFor(alice.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenChatPeerNotFound(t *testing.T) {
	dir, db := newTestDirectory(t)

	alice := createUser(t, db, "alice", "alice@example.com")

	_, err := dir.OpenChat(alice.ID, "ghost@example.com")
	assert.ErrorIs(t, err, ErrPeerNotFound)
}

func TestOpenChatWithSelf(t *testing.T) {
	dir, db := newTestDirectory(t)

	alice := createUser(t, db, "alice", "alice@example.com")

	_, err := dir.OpenChat(alice.ID, "alice@example.com")
	assert.ErrorIs(t, err, ErrSelfChat)
}

func TestListChats(t *testing.T) {
	dir, db := newTestDirectory(t)

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")
	createUser(t, db, "carol", "carol@example.com")

	bobRoom, err := dir.OpenChat(alice.ID, "bob@example.com")
	require.NoError(t, err)
	carolRoom, err := dir.OpenChat(alice.ID, "carol@example.com")
	require.NoError(t, err)

	require.NoError(t, db.AppendChatMessage(&models.ChatMessage{
		RoomID:         bobRoom,
		SenderID:       bob.ID,
		SenderUsername: "bob",
		Content:        "hi there",
		Timestamp:      time.Now(),
	}))

	chats, err := dir.ListChats(alice.ID, carolRoom)
	require.NoError(t, err)
	require.Len(t, chats, 2)

	assert.Equal(t, "bob", chats[0].PeerUsername)
	assert.Equal(t, bobRoom, chats[0].RoomID)
	assert.Equal(t, "hi there", chats[0].LastMessage)
	assert.False(t, chats[0].IsActive)

	assert.Equal(t, "carol", chats[1].PeerUsername)
	assert.Equal(t, carolRoom, chats[1].RoomID)
	assert.Equal(t, "This place is empty. No messages ...", chats[1].LastMessage)
	assert.True(t, chats[1].IsActive)

	// The peer's side sees the same room.
	bobChats, err := dir.ListChats(bob.ID, "")
	require.NoError(t, err)
	require.Len(t, bobChats, 1)
	assert.Equal(t, bobRoom, bobChats[0].RoomID)
	assert.Equal(t, alice.ID, bobChats[0].PeerID)
	assert.Equal(t, "hi there", bobChats[0].LastMessage)
}
