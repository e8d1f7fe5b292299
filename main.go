package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"patenthub/internal/cache"
	"patenthub/internal/config"
	"patenthub/internal/handlers"
	"patenthub/internal/middleware"
	"patenthub/internal/models"
	"patenthub/internal/repositories"
	"patenthub/internal/services"
	"patenthub/pkg/rabbitmq"
)

// appDeps bundles the constructed services and middleware buildApp needs.
type appDeps struct {
	authService    *services.AuthService
	userService    *services.UserService
	patentService  *services.PatentService
	productService *services.ProductService
	responseCache  cache.ResponseCache
	loginLimiter   fiber.Handler
}

// buildApp assembles the Fiber app, routes and middleware from injected
// dependencies.
func buildApp(deps appDeps) *fiber.App {
	app := fiber.New()
	app.Use(logger.New())

	authRequired := middleware.AuthRequired(deps.authService)

	api := app.Group("/api")

	authHandler := handlers.NewAuthHandler(deps.authService)
	authHandler.RegisterRoutes(api, deps.loginLimiter, authRequired)

	userHandler := handlers.NewUserHandler(deps.authService, deps.userService, deps.responseCache)
	userHandler.RegisterRoutes(api, authRequired)

	patentHandler := handlers.NewPatentHandler(deps.patentService, deps.responseCache)
	patentHandler.RegisterRoutes(api, authRequired)

	productHandler := handlers.NewProductHandler(deps.productService, deps.responseCache)
	productHandler.RegisterRoutes(api, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

func main() {
	cfg := config.Load()

	// --- Record / credential store ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Patent{}, &models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Cache backend ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// --- Message broker ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	patentRepo := repositories.NewGORMPatentRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo)
	patentService := services.NewPatentService(patentRepo, mqClient)
	productService := services.NewProductService(productRepo, mqClient)

	responseCache := cache.NewRedisCache(rdb, cfg.CacheTTL)
	loginLimiter := middleware.NewRateLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	app := buildApp(appDeps{
		authService:    authService,
		userService:    userService,
		patentService:  patentService,
		productService: productService,
		responseCache:  responseCache,
		loginLimiter:   loginLimiter.Handler(),
	})

	// Drain record events in-process so mutations are visible in the logs
	// even without a dedicated worker deployed.
	go func() {
		log.Println("Starting RabbitMQ consumer for record events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Record event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeRecordEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
