package handlers

import (
	"encoding/json"
	"errors"
	"log"

	"patenthub/internal/cache"
	"patenthub/internal/middleware"
	"patenthub/internal/models"
	"patenthub/internal/repositories"
	"patenthub/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for product records. Identical
// authorization and caching treatment as patents.
type ProductHandler struct {
	service  *services.ProductService
	cache    cache.ResponseCache
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, responseCache cache.ResponseCache) *ProductHandler {
	return &ProductHandler{
		service:  service,
		cache:    responseCache,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes, all behind authentication.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	productRoutes := router.Group("/products", authRequired)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Get("/search", h.HandleSearch)
	productRoutes.Get("/:id", middleware.RequireValidID(), h.HandleGetByID)
	productRoutes.Put("/:id", middleware.RequireValidID(), h.HandleUpdate)
	productRoutes.Delete("/:id", middleware.RequireValidID(), h.HandleDelete)
}

// HandleCreate stores a new product owned by the caller.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product create body: %v", err)
		return badRequestBody(c, err)
	}

	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	identity := middleware.CurrentIdentity(c)
	if err := h.service.CreateProduct(identity, &product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error creating product",
		})
	}

	log.Printf("Product created: %s", product.ID)
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleSearch returns products matching query and category, served
// read-through from the cache.
func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	category := c.Query("category")
	key := cache.SearchKey("product", query, category)

	if body, ok := h.cache.Lookup(c.Context(), key); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(body)
	}

	products, err := h.service.SearchProducts(query, category)
	if err != nil {
		log.Printf("Product search error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error searching products",
		})
	}
	if products == nil {
		products = []models.Product{}
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error searching products",
		})
	}

	h.cache.Store(c.Context(), key, payload)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleGetByID returns a product by id.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error retrieving product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving product",
		})
	}
	return c.JSON(product)
}

// HandleUpdate modifies a product. Ownership is checked before the payload
// is validated; non-owner and missing id are indistinguishable.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	existing, err := h.service.GetOwnedProduct(c.Params("id"), identity.ID)
	if err != nil {
		log.Println("Product not found or unauthorized")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found or unauthorized",
		})
	}

	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing product update body: %v", err)
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(payload); err != nil {
		return validationFailed(c, err)
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Category = payload.Category
	existing.Price = payload.Price
	existing.Stock = payload.Stock

	if err := h.service.UpdateProduct(existing); err != nil {
		log.Printf("Product update error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error updating product",
		})
	}

	log.Printf("Product updated: %s", existing.ID)
	return c.JSON(existing)
}

// HandleDelete removes a product owned by the caller.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	if err := h.service.DeleteProduct(c.Params("id"), identity.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Println("Product not found or unauthorized")
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found or unauthorized",
			})
		}
		log.Printf("Product deletion error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting product",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
