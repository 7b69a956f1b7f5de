package database

import (
	"errors"
	"os"

	"github.com/pselivanov/errandchat/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}
	return d.Open(postgres.Open(dsn))
}

// Open connects through an arbitrary dialector and runs migrations.
// Tests use it with an in-memory sqlite dialector.
func (d *Database) Open(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Request{},
		&models.ChatEntry{},
		&models.MessageLog{},
		&models.ChatMessage{},
	)
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
