package database

import (
	"github.com/pselivanov/errandchat/internal/models"
	"gorm.io/gorm"
)

// CreateChatPair inserts the symmetric chat entries for both participants and
// ensures the room's message log exists, all in one transaction. The per-room
// lock serializes concurrent double-initiations of the same pair.
func (d *Database) CreateChatPair(userID, peerID uint, roomID string) error {
	lock := d.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	return d.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ChatEntry
		err := tx.Where("user_id = ? AND peer_id = ?", userID, peerID).First(&existing).Error
		if err == nil {
			// Already opened, nothing to do.
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		entries := []models.ChatEntry{
			{UserID: userID, PeerID: peerID, RoomID: roomID},
			{UserID: peerID, PeerID: userID, RoomID: roomID},
		}
		if err := tx.Create(&entries).Error; err != nil {
			return err
		}

		var log models.MessageLog
		return tx.FirstOrCreate(&log, models.MessageLog{RoomID: roomID}).Error
	})
}

func (d *Database) FindChatEntry(userID, peerID uint) (*models.ChatEntry, error) {
	var entry models.ChatEntry
	if err := d.db.Where("user_id = ? AND peer_id = ?", userID, peerID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ChatEntriesFor returns the user's chat list in the order the chats were
// opened, with peer users preloaded.
func (d *Database) ChatEntriesFor(userID uint) ([]models.ChatEntry, error) {
	var entries []models.ChatEntry
	err := d.db.
		Where("user_id = ?", userID).
		Order("id ASC").
		Preload("Peer").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// HasChatEntryForRoom reports whether the user's chat list references the room.
func (d *Database) HasChatEntryForRoom(userID uint, roomID string) (bool, error) {
	var count int64
	err := d.db.Model(&models.ChatEntry{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
