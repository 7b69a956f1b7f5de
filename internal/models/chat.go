package models

import (
	"time"
)

// ChatEntry is one slot in a user's chat list. Opening a chat creates a
// symmetric pair of entries, one per participant, referencing the same room.
type ChatEntry struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_chat_entries_user_peer"`
	PeerID    uint   `gorm:"not null;uniqueIndex:idx_chat_entries_user_peer"`
	RoomID    string `gorm:"not null;index"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
	Peer User `gorm:"foreignKey:PeerID"`
}
