package database

import (
	"github.com/pselivanov/errandchat/internal/models"
)

func (d *Database) CreateRequest(request *models.Request) error {
	return d.db.Create(request).Error
}

func (d *Database) GetRequest(id uint) (*models.Request, error) {
	var request models.Request
	if err := d.db.Preload("User").First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListRequests returns every open request, newest first.
func (d *Database) ListRequests() ([]models.Request, error) {
	var requests []models.Request
	err := d.db.Order("id DESC").Preload("User").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (d *Database) DeleteRequest(id uint) error {
	return d.db.Delete(&models.Request{}, "id = ?", id).Error
}
