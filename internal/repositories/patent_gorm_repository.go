package repositories

import (
	"errors"
	"fmt"

	"patenthub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPatentRepository is a GORM implementation of PatentRepository.
type GORMPatentRepository struct {
	db *gorm.DB
}

// NewGORMPatentRepository creates a new instance of GORMPatentRepository.
func NewGORMPatentRepository(db *gorm.DB) *GORMPatentRepository {
	return &GORMPatentRepository{
		db: db,
	}
}

// Create creates a new patent.
func (r *GORMPatentRepository) Create(patent *models.Patent) error {
	if patent.ID == "" {
		patent.ID = uuid.New().String()
	}
	if err := r.db.Create(patent).Error; err != nil {
		return fmt.Errorf("failed to create patent: %w", err)
	}
	return nil
}

// Search matches name/description against query and category exactly, both
// filters ANDed. An empty query matches everything.
func (r *GORMPatentRepository) Search(query, category string) ([]models.Patent, error) {
	tx := r.db.Model(&models.Patent{})
	if query != "" {
		like := "%" + query + "%"
		tx = tx.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var patents []models.Patent
	if err := tx.Find(&patents).Error; err != nil {
		return nil, fmt.Errorf("failed to search patents: %w", err)
	}
	return patents, nil
}

// GetByID retrieves a patent by its ID.
func (r *GORMPatentRepository) GetByID(id string) (*models.Patent, error) {
	var patent models.Patent
	if err := r.db.First(&patent, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patent by ID %s: %w", id, err)
	}
	return &patent, nil
}

// GetOwned retrieves a patent only if it belongs to ownerID.
func (r *GORMPatentRepository) GetOwned(id, ownerID string) (*models.Patent, error) {
	var patent models.Patent
	if err := r.db.First(&patent, "id = ? AND created_by = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patent %s for owner: %w", id, err)
	}
	return &patent, nil
}

// Update saves all fields of an existing patent.
func (r *GORMPatentRepository) Update(patent *models.Patent) error {
	res := r.db.Save(patent)
	if res.Error != nil {
		return fmt.Errorf("failed to update patent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOwned removes a patent scoped to (id, ownerID) in a single statement.
func (r *GORMPatentRepository) DeleteOwned(id, ownerID string) error {
	res := r.db.Delete(&models.Patent{}, "id = ? AND created_by = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete patent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
