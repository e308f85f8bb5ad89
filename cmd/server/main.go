package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobdesk-api/internal/adapters/http/middleware"
	"jobdesk-api/internal/adapters/http/routes"
	"jobdesk-api/internal/adapters/persistence/models"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/config"
	"jobdesk-api/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "jobdesk-api/docs" // Swagger docs
)

// @title JobDesk API
// @version 1.0
// @description Job board backend with accounts, postings, applications and notifications.

// @contact.name API Support
// @contact.email support@jobdesk.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed the initial admin account
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("Warning: failed to seed initial data: %v", err)
	}

	// Start cron service for closing expired job postings
	jobService := services.NewJobService(repositories.NewJobRepository(db))
	cronService := services.NewCronService(jobService)
	if err := cronService.Start(); err != nil {
		log.Fatalf("Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "JobDesk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
