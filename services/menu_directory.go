package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tableside/tableside/models"
)

// MenuDirectory is the server-authoritative menu directory backed by the
// relational store. It mirrors the catalog operations of CatalogService
// for deployments where the backend owns the menu.
type MenuDirectory struct {
	DB *gorm.DB
}

func NewMenuDirectory(db *gorm.DB) *MenuDirectory {
	return &MenuDirectory{DB: db}
}

func (d *MenuDirectory) Items() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := d.DB.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (d *MenuDirectory) ItemsByCategory(category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := d.DB.Where("category = ?", category).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (d *MenuDirectory) ItemByID(id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := d.DB.First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.MenuItem{}, ErrNotFound
	}
	if err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// Upsert saves the item, generating an identifier when it has none.
func (d *MenuDirectory) Upsert(item models.MenuItem) (models.MenuItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.UpdatedAt = time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = item.UpdatedAt
	}
	if err := d.DB.Save(&item).Error; err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

func (d *MenuDirectory) Delete(id string) error {
	result := d.DB.Delete(&models.MenuItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
