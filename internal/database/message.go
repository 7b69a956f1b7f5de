package database

import (
	"errors"

	"github.com/pselivanov/errandchat/internal/models"
	"gorm.io/gorm"
)

// GetOrCreateMessageLog looks up the room's message log, creating an empty one
// when absent. The per-room lock plus the unique index on room_id guarantee at
// most one log per room even under concurrent first-sends.
func (d *Database) GetOrCreateMessageLog(roomID string) (*models.MessageLog, error) {
	lock := d.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	var entry models.MessageLog
	err := d.db.Where("room_id = ?", roomID).First(&entry).Error
	if err == nil {
		return &entry, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry = models.MessageLog{RoomID: roomID}
	if createErr := d.db.Create(&entry).Error; createErr != nil {
		// Lost a creation race; the existing row is the one to use.
		if findErr := d.db.Where("room_id = ?", roomID).First(&entry).Error; findErr == nil {
			return &entry, nil
		}
		return nil, createErr
	}

	return &entry, nil
}

// AppendChatMessage durably records one message in the room's log. The write
// runs in a transaction so a failure leaves no half-written row behind.
func (d *Database) AppendChatMessage(msg *models.ChatMessage) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(msg).Error
	})
}

// MessageHistory returns the room's log in insertion order. A room without a
// log yields an empty slice.
func (d *Database) MessageHistory(roomID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := d.db.
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// LastChatMessage returns the most recent message in the room, nil when the
// room has none.
func (d *Database) LastChatMessage(roomID string) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	err := d.db.Where("room_id = ?", roomID).Order("id DESC").First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
