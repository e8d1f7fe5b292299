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

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cache       cache.ResponseCache
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService, responseCache cache.ResponseCache) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		cache:       responseCache,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. Registration is public; all
// other routes require authentication.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleRegister)
	userRoutes.Get("/", authRequired, middleware.RequireAdmin(), h.HandleListUsers)
	userRoutes.Get("/:id", authRequired, middleware.RequireValidID(), middleware.RequireSelfOrAdmin(), h.HandleGetUser)
	userRoutes.Put("/:id", authRequired, middleware.RequireValidID(), middleware.RequireSelfOrAdmin(), h.HandleUpdateUser)
	userRoutes.Delete("/:id", authRequired, middleware.RequireValidID(), middleware.RequireSelfOrAdmin(), h.HandleDeleteUser)
}

// RegisterRequest represents the request body for registration. The
// password has to come through a dedicated field because the model never
// deserializes it.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// HandleRegister creates a new account and immediately issues a token for
// it.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return badRequestBody(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	token, err := h.authService.RegisterUser(&user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Email already registered",
			})
		}
		log.Printf("Error registering user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// HandleListUsers returns all users, served read-through from the shared
// users cache entry.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	if body, ok := h.cache.Lookup(c.Context(), cache.UsersKey); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(body)
	}

	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error listing users",
		})
	}
	if users == nil {
		users = []models.User{}
	}

	payload, err := json.Marshal(users)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error listing users",
		})
	}

	h.cache.Store(c.Context(), cache.UsersKey, payload)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// HandleGetUser returns a single user by id.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUserByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error getting user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error getting user",
		})
	}
	return c.JSON(user)
}

// UpdateUserRequest represents the request body for a user update. All
// fields are optional; a supplied password is re-hashed.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,min=1,max=100"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// HandleUpdateUser updates the addressed user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user update body: %v", err)
		return badRequestBody(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateUser(c.Params("id"), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Email already registered",
			})
		}
		log.Printf("Error updating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error updating user",
		})
	}
	return c.JSON(user)
}

// HandleDeleteUser removes the addressed user.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Params("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error deleting user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error deleting user",
		})
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
