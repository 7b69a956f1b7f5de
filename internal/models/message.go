package models

import (
	"time"
)

// MessageLog is the per-room container row. The unique index on RoomID is the
// storage-level backstop against duplicate logs for one room.
type MessageLog struct {
	ID        uint   `gorm:"primaryKey"`
	RoomID    string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time

	Messages []ChatMessage `gorm:"foreignKey:RoomID;references:RoomID"`
}

// ChatMessage is one immutable chat utterance. SenderUsername is denormalized
// at write time so the display name stays what it was when the message was sent.
type ChatMessage struct {
	ID             uint   `gorm:"primaryKey"`
	RoomID         string `gorm:"not null;index"`
	SenderID       uint   `gorm:"not null"`
	SenderUsername string `gorm:"not null"`
	Content        string `gorm:"not null"`
	Timestamp      time.Time
}
