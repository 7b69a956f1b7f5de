package models

import (
	"time"
)

// Request is an errand posted by a user. Other users respond by opening a
// chat with the requester.
type Request struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	UserID      uint   `gorm:"not null"`
	CreatedAt   time.Time

	User User `gorm:"foreignKey:UserID"`
}
