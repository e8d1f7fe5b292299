package repositories

import "patenthub/internal/models"

// ProductRepository defines the interface for product data access. Same
// ownership contract as PatentRepository.
type ProductRepository interface {
	Create(product *models.Product) error
	Search(query, category string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetOwned(id, ownerID string) (*models.Product, error)
	Update(product *models.Product) error
	DeleteOwned(id, ownerID string) error
}
