package services

import (
	"log"
	"time"

	"patenthub/internal/models"
	"patenthub/internal/repositories"
	"patenthub/pkg/rabbitmq"
)

// ProductService handles business logic for product records. Same ownership
// and event rules as PatentService.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService. mqClient may be nil.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// CreateProduct stores a new product owned by identity.
func (s *ProductService) CreateProduct(identity models.Identity, product *models.Product) error {
	product.ID = ""
	product.CreatedBy = identity.ID
	product.CreatedAt = time.Now()

	if err := s.repo.Create(product); err != nil {
		return err
	}

	s.publishEvent("created", product.ID, identity.ID)
	return nil
}

// SearchProducts finds products matching query over name/description and
// the exact category, ANDed. Empty query matches all.
func (s *ProductService) SearchProducts(query, category string) ([]models.Product, error) {
	return s.repo.Search(query, category)
}

// GetProductByID retrieves a product with no ownership restriction.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetOwnedProduct retrieves a product only if ownerID owns it.
func (s *ProductService) GetOwnedProduct(id, ownerID string) (*models.Product, error) {
	return s.repo.GetOwned(id, ownerID)
}

// UpdateProduct saves a product previously loaded via GetOwnedProduct.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		return err
	}

	s.publishEvent("updated", product.ID, product.CreatedBy)
	return nil
}

// DeleteProduct removes a product scoped to its owner in one atomic
// operation.
func (s *ProductService) DeleteProduct(id, ownerID string) error {
	if err := s.repo.DeleteOwned(id, ownerID); err != nil {
		return err
	}

	s.publishEvent("deleted", id, ownerID)
	return nil
}

func (s *ProductService) publishEvent(event, id, userID string) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishRecordEvent(rabbitmq.RecordEvent{
		Event:    event,
		Resource: "product",
		ID:       id,
		UserID:   userID,
	})
	if err != nil {
		log.Printf("Warning: failed to publish product %s event for %s: %v", event, id, err)
	}
}
