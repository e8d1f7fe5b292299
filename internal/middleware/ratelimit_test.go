package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"patenthub/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterFailsOpenWithoutBackend(t *testing.T) {
	app := fiber.New()
	limiter := middleware.NewRateLimiter(nil, 5, 15*time.Minute)
	app.Post("/login", limiter.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestRateLimiterFailsOpenOnBackendError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		ReadTimeout: 50 * time.Millisecond,
	})
	defer client.Close()

	app := fiber.New()
	limiter := middleware.NewRateLimiter(client, 1, time.Minute)
	app.Post("/login", limiter.Handler(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// An unreachable redis must never lock out logins.
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/login", nil)
		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}
