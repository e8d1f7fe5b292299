package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireValidID rejects requests whose :id path parameter is not a
// well-formed UUID before any store lookup happens.
func RequireValidID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := uuid.Parse(c.Params("id")); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid ID format",
			})
		}
		return c.Next()
	}
}

// RequireSelfOrAdmin allows the request through when the caller is an admin
// or addresses their own :id.
func RequireSelfOrAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if !identity.IsAdmin() && identity.ID != c.Params("id") {
			log.Printf("Access denied for user %s", identity.ID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied",
			})
		}
		return c.Next()
	}
}

// RequireAdmin allows only callers with the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if !identity.IsAdmin() {
			log.Printf("Access denied for non-admin user %s", identity.ID)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied. Admin privileges required.",
			})
		}
		return c.Next()
	}
}
