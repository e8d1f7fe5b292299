package repositories

import "patenthub/internal/models"

// PatentRepository defines the interface for patent data access. The *Owned
// variants scope the operation to (id, createdBy) so a missing record and a
// record owned by someone else are indistinguishable to the caller.
type PatentRepository interface {
	Create(patent *models.Patent) error
	Search(query, category string) ([]models.Patent, error)
	GetByID(id string) (*models.Patent, error)
	GetOwned(id, ownerID string) (*models.Patent, error)
	Update(patent *models.Patent) error
	DeleteOwned(id, ownerID string) error
}
