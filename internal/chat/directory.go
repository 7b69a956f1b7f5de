package chat

import (
	"errors"

	"github.com/pselivanov/errandchat/internal/database"
	"github.com/pselivanov/errandchat/pkg/roomid"
	"gorm.io/gorm"
)

var (
	ErrPeerNotFound = errors.New("peer not found")
	ErrSelfChat     = errors.New("cannot open a chat with yourself")
)

// Preview shown in the chat list for rooms nobody has written to yet.
const emptyRoomPreview = "This place is empty. No messages ..."

// Summary is one row of a user's chat list.
type Summary struct {
	PeerID       uint   `json:"peer_id"`
	PeerUsername string `json:"peer_username"`
	RoomID       string `json:"room_id"`
	IsActive     bool   `json:"is_active"`
	LastMessage  string `json:"last_message"`
}

// Directory manages each user's list of open chats.
type Directory struct {
	db *database.Database
}

func NewDirectory(db *database.Database) *Directory {
	return &Directory{db: db}
}

// OpenChat resolves the peer by email and opens a chat between the requester
// and the peer. Both chat lists end up referencing the same room. Re-opening
// an existing chat is a no-op that returns the existing room id.
func (d *Directory) OpenChat(requesterID uint, peerEmail string) (string, error) {
	peer, err := d.db.FindUserByEmail(peerEmail)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrPeerNotFound
	}
	if err != nil {
		return "", err
	}
	if peer.ID == requesterID {
		return "", ErrSelfChat
	}

	entry, err := d.db.FindChatEntry(requesterID, peer.ID)
	if err == nil {
		return entry.RoomID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	rid := roomid.Direct(requesterID, peer.ID)
	if err := d.db.CreateChatPair(requesterID, peer.ID, rid); err != nil {
		return "", err
	}

	return rid, nil
}

// ListChats returns the user's chat list in the order the chats were opened.
// activeRoomID marks which entry the user is currently viewing.
func (d *Directory) ListChats(userID uint, activeRoomID string) ([]Summary, error) {
	entries, err := d.db.ChatEntriesFor(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		preview := emptyRoomPreview
		last, err := d.db.LastChatMessage(entry.RoomID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			preview = last.Content
		}

		summaries = append(summaries, Summary{
			PeerID:       entry.PeerID,
			PeerUsername: entry.Peer.Username,
			RoomID:       entry.RoomID,
			IsActive:     entry.RoomID == activeRoomID,
			LastMessage:  preview,
		})
	}

	return summaries, nil
}
