package services

import (
	"log"
	"time"

	"patenthub/internal/models"
	"patenthub/internal/repositories"
	"patenthub/pkg/rabbitmq"
)

// PatentService handles business logic for patent records.
type PatentService struct {
	repo     repositories.PatentRepository
	mqClient *rabbitmq.Client
}

// NewPatentService creates a new PatentService. mqClient may be nil, in
// which case no events are published.
func NewPatentService(repo repositories.PatentRepository, mqClient *rabbitmq.Client) *PatentService {
	return &PatentService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// CreatePatent stores a new patent owned by identity. Any owner or id values
// in the payload are overwritten.
func (s *PatentService) CreatePatent(identity models.Identity, patent *models.Patent) error {
	patent.ID = ""
	patent.CreatedBy = identity.ID
	patent.CreatedAt = time.Now()

	if err := s.repo.Create(patent); err != nil {
		return err
	}

	s.publishEvent("created", patent.ID, identity.ID)
	return nil
}

// SearchPatents finds patents matching query over name/description and the
// exact category, ANDed. Empty query matches all.
func (s *PatentService) SearchPatents(query, category string) ([]models.Patent, error) {
	return s.repo.Search(query, category)
}

// GetPatentByID retrieves a patent with no ownership restriction.
func (s *PatentService) GetPatentByID(id string) (*models.Patent, error) {
	return s.repo.GetByID(id)
}

// GetOwnedPatent retrieves a patent only if ownerID owns it. Missing and
// not-owned both yield repositories.ErrNotFound.
func (s *PatentService) GetOwnedPatent(id, ownerID string) (*models.Patent, error) {
	return s.repo.GetOwned(id, ownerID)
}

// UpdatePatent saves a patent previously loaded via GetOwnedPatent.
func (s *PatentService) UpdatePatent(patent *models.Patent) error {
	if err := s.repo.Update(patent); err != nil {
		return err
	}

	s.publishEvent("updated", patent.ID, patent.CreatedBy)
	return nil
}

// DeletePatent removes a patent scoped to its owner in one atomic operation.
func (s *PatentService) DeletePatent(id, ownerID string) error {
	if err := s.repo.DeleteOwned(id, ownerID); err != nil {
		return err
	}

	s.publishEvent("deleted", id, ownerID)
	return nil
}

// publishEvent emits a record event, best-effort. Publish failures are
// logged and never surface to the request.
func (s *PatentService) publishEvent(event, id, userID string) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishRecordEvent(rabbitmq.RecordEvent{
		Event:    event,
		Resource: "patent",
		ID:       id,
		UserID:   userID,
	})
	if err != nil {
		log.Printf("Warning: failed to publish patent %s event for %s: %v", event, id, err)
	}
}
