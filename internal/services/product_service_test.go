package services_test

import (
	"testing"

	"patenthub/internal/models"
	"patenthub/internal/repositories"
	"patenthub/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestProductService_CreateForcesOwner(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo, nil)

	identity := models.Identity{ID: "owner-1", Role: "user"}
	product := &models.Product{
		Name:        "Laptop",
		Description: "High performance laptop",
		Category:    "Electronics",
		Price:       1200.00,
		Stock:       10,
		CreatedBy:   "someone-else",
	}
	err := service.CreateProduct(identity, product)
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", product.CreatedBy)
}

func TestProductService_UpdateAndDeleteOwnerScoped(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	service := services.NewProductService(repo, nil)
	owner := models.Identity{ID: "owner-1", Role: "user"}

	product := &models.Product{
		Name:        "Keyboard",
		Description: "Mechanical keyboard",
		Category:    "Electronics",
		Price:       75.00,
		Stock:       25,
	}
	assert.NoError(t, service.CreateProduct(owner, product))

	_, err := service.GetOwnedProduct(product.ID, "intruder")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	owned, err := service.GetOwnedProduct(product.ID, "owner-1")
	assert.NoError(t, err)
	owned.Price = 65.00
	assert.NoError(t, service.UpdateProduct(owned))

	updated, err := service.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 65.00, updated.Price)

	assert.ErrorIs(t, service.DeleteProduct(product.ID, "intruder"), repositories.ErrNotFound)
	assert.NoError(t, service.DeleteProduct(product.ID, "owner-1"))
}
