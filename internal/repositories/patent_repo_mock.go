package repositories

import (
	"strings"
	"sync"
	"time"

	"patenthub/internal/models"

	"github.com/google/uuid"
)

// MockPatentRepository is an in-memory implementation of PatentRepository.
type MockPatentRepository struct {
	patents map[string]models.Patent
	mu      sync.RWMutex
}

// NewMockPatentRepository creates a new instance of MockPatentRepository.
func NewMockPatentRepository() *MockPatentRepository {
	return &MockPatentRepository{
		patents: make(map[string]models.Patent),
	}
}

// Create adds a new patent.
func (r *MockPatentRepository) Create(patent *models.Patent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if patent.ID == "" {
		patent.ID = uuid.New().String()
	}
	if patent.CreatedAt.IsZero() {
		patent.CreatedAt = time.Now()
	}
	r.patents[patent.ID] = *patent
	return nil
}

// Search filters patents by substring match on name/description and exact
// category match.
func (r *MockPatentRepository) Search(query, category string) ([]models.Patent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	results := make([]models.Patent, 0)
	for _, p := range r.patents {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

// GetByID returns a patent by its ID.
func (r *MockPatentRepository) GetByID(id string) (*models.Patent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patent, ok := r.patents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &patent, nil
}

// GetOwned returns a patent only if it belongs to ownerID.
func (r *MockPatentRepository) GetOwned(id, ownerID string) (*models.Patent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patent, ok := r.patents[id]
	if !ok || patent.CreatedBy != ownerID {
		return nil, ErrNotFound
	}
	return &patent, nil
}

// Update modifies an existing patent.
func (r *MockPatentRepository) Update(patent *models.Patent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patents[patent.ID]; !ok {
		return ErrNotFound
	}
	r.patents[patent.ID] = *patent
	return nil
}

// DeleteOwned removes a patent scoped to (id, ownerID).
func (r *MockPatentRepository) DeleteOwned(id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	patent, ok := r.patents[id]
	if !ok || patent.CreatedBy != ownerID {
		return ErrNotFound
	}
	delete(r.patents, id)
	return nil
}
