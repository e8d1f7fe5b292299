package services_test

import (
	"testing"

	"patenthub/internal/models"
	"patenthub/internal/repositories"
	"patenthub/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestPatentService_CreateForcesOwner(t *testing.T) {
	repo := repositories.NewMockPatentRepository()
	service := services.NewPatentService(repo, nil)

	identity := models.Identity{ID: "owner-1", Role: "user"}

	// Spoofed id and owner in the payload are overwritten.
	patent := &models.Patent{
		ID:          "spoofed-id",
		Name:        "Water Filter",
		Description: "A filter for water",
		Category:    "CategoryA",
		CreatedBy:   "someone-else",
	}
	err := service.CreatePatent(identity, patent)
	assert.NoError(t, err)
	assert.NotEqual(t, "spoofed-id", patent.ID)
	assert.Equal(t, "owner-1", patent.CreatedBy)
	assert.False(t, patent.CreatedAt.IsZero())

	stored, err := repo.GetByID(patent.ID)
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", stored.CreatedBy)
}

func TestPatentService_OwnershipScoping(t *testing.T) {
	repo := repositories.NewMockPatentRepository()
	service := services.NewPatentService(repo, nil)

	owner := models.Identity{ID: "owner-1", Role: "user"}
	patent := &models.Patent{
		Name:        "Solar Panel",
		Description: "Improved efficiency panel",
		Category:    "CategoryB",
	}
	assert.NoError(t, service.CreatePatent(owner, patent))

	// The owner can load the record for update.
	owned, err := service.GetOwnedPatent(patent.ID, "owner-1")
	assert.NoError(t, err)
	assert.Equal(t, patent.ID, owned.ID)

	// A non-owner gets the same error as a missing id, and an admin gets no
	// override either.
	_, errNonOwner := service.GetOwnedPatent(patent.ID, "intruder")
	assert.ErrorIs(t, errNonOwner, repositories.ErrNotFound)

	_, errMissing := service.GetOwnedPatent("00000000-0000-0000-0000-000000000000", "owner-1")
	assert.ErrorIs(t, errMissing, repositories.ErrNotFound)
	assert.Equal(t, errMissing.Error(), errNonOwner.Error())

	// Delete is owner-scoped the same way.
	assert.ErrorIs(t, service.DeletePatent(patent.ID, "intruder"), repositories.ErrNotFound)
	assert.NoError(t, service.DeletePatent(patent.ID, "owner-1"))
	_, err = service.GetPatentByID(patent.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPatentService_Search(t *testing.T) {
	repo := repositories.NewMockPatentRepository()
	service := services.NewPatentService(repo, nil)
	owner := models.Identity{ID: "owner-1", Role: "user"}

	seeds := []models.Patent{
		{Name: "Hydro Turbine", Description: "Generates power from water", Category: "Energy"},
		{Name: "Wind Turbine", Description: "Generates power from wind", Category: "Energy"},
		{Name: "Smart Lock", Description: "A connected door lock", Category: "Security"},
	}
	for i := range seeds {
		assert.NoError(t, service.CreatePatent(owner, &seeds[i]))
	}

	// Empty query matches everything.
	all, err := service.SearchPatents("", "")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// Category is an exact filter.
	energy, err := service.SearchPatents("", "Energy")
	assert.NoError(t, err)
	assert.Len(t, energy, 2)

	// Query matches over name and description, ANDed with category.
	hydro, err := service.SearchPatents("water", "Energy")
	assert.NoError(t, err)
	assert.Len(t, hydro, 1)
	assert.Equal(t, "Hydro Turbine", hydro[0].Name)

	none, err := service.SearchPatents("water", "Security")
	assert.NoError(t, err)
	assert.Len(t, none, 0)
}
