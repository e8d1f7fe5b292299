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

// PatentHandler handles HTTP requests for patent records.
type PatentHandler struct {
	service  *services.PatentService
	cache    cache.ResponseCache
	validate *validator.Validate
}

// NewPatentHandler creates a new PatentHandler.
func NewPatentHandler(service *services.PatentService, responseCache cache.ResponseCache) *PatentHandler {
	return &PatentHandler{
		service:  service,
		cache:    responseCache,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the patent routes, all behind authentication.
func (h *PatentHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	patentRoutes := router.Group("/patents", authRequired)
	patentRoutes.Post("/", h.HandleCreate)
	patentRoutes.Get("/search", h.HandleSearch)
	patentRoutes.Get("/:id", middleware.RequireValidID(), h.HandleGetByID)
	patentRoutes.Put("/:id", middleware.RequireValidID(), h.HandleUpdate)
	patentRoutes.Delete("/:id", middleware.RequireValidID(), h.HandleDelete)
}

// HandleCreate stores a new patent owned by the caller. Owner values in the
// payload are ignored.
func (h *PatentHandler) HandleCreate(c *fiber.Ctx) error {
	var patent models.Patent
	if err := c.BodyParser(&patent); err != nil {
		log.Printf("Error parsing patent create body: %v", err)
		return badRequestBody(c, err)
	}

	if err := h.validate.Struct(patent); err != nil {
		return validationFailed(c, err)
	}

	identity := middleware.CurrentIdentity(c)
	if err := h.service.CreatePatent(identity, &patent); err != nil {
		log.Printf("Error creating patent: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error creating patent",
		})
	}

	log.Printf("Patent created: %s", patent.ID)
	return c.Status(fiber.StatusCreated).JSON(patent)
}

// HandleSearch returns patents matching query and category, served
// read-through from the cache. A cache hit returns the stored body
// verbatim.
func (h *PatentHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("query")
	category := c.Query("category")
	key := cache.SearchKey("patent", query, category)

	if body, ok := h.cache.Lookup(c.Context(), key); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(body)
	}

	patents, err := h.service.SearchPatents(query, category)
	if err != nil {
		log.Printf("Patent search error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error searching patents",
		})
	}
	if patents == nil {
		patents = []models.Patent{}
	}

	payload, err := json.Marshal(patents)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error searching patents",
		})
	}

	h.cache.Store(c.Context(), key, payload)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleGetByID returns a patent by id; any authenticated caller may read
// any patent.
func (h *PatentHandler) HandleGetByID(c *fiber.Ctx) error {
	patent, err := h.service.GetPatentByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Patent not found",
			})
		}
		log.Printf("Error retrieving patent: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error retrieving patent",
		})
	}
	return c.JSON(patent)
}

// HandleUpdate modifies a patent. Ownership is checked before the payload
// is validated, and a non-owner gets the same response as a missing id.
func (h *PatentHandler) HandleUpdate(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	existing, err := h.service.GetOwnedPatent(c.Params("id"), identity.ID)
	if err != nil {
		log.Println("Patent not found or unauthorized")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Patent not found or unauthorized",
		})
	}

	var payload models.Patent
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing patent update body: %v", err)
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(payload); err != nil {
		return validationFailed(c, err)
	}

	existing.Name = payload.Name
	existing.Description = payload.Description
	existing.Category = payload.Category

	if err := h.service.UpdatePatent(existing); err != nil {
		log.Printf("Patent update error: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Error updating patent",
		})
	}

	log.Printf("Patent updated: %s", existing.ID)
	return c.JSON(existing)
}

// HandleDelete removes a patent owned by the caller, with the same
// existence-hiding 404 as update.
func (h *PatentHandler) HandleDelete(c *fiber.Ctx) error {
	identity := middleware.CurrentIdentity(c)

	if err := h.service.DeletePatent(c.Params("id"), identity.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Println("Patent not found or unauthorized")
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Patent not found or unauthorized",
			})
		}
		log.Printf("Patent deletion error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting patent",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Patent deleted successfully",
	})
}
