package database

import (
	"sync"

	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB

	// Per-room locks serializing get-or-create of message logs and chat
	// pair creation, so concurrent first-sends cannot race.
	roomMu    sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) roomLock(roomID string) *sync.Mutex {
	d.roomMu.Lock()
	defer d.roomMu.Unlock()

	if d.roomLocks == nil {
		d.roomLocks = make(map[string]*sync.Mutex)
	}

	lock, ok := d.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		d.roomLocks[roomID] = lock
	}
	return lock
}
