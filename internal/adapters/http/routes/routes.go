package routes

import (
	"jobdesk-api/internal/adapters/http/handlers"
	"jobdesk-api/internal/adapters/http/middleware"
	"jobdesk-api/internal/adapters/persistence/repositories"
	"jobdesk-api/internal/config"
	"jobdesk-api/internal/core/services"
	"jobdesk-api/internal/pkg/googleauth"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)

	// Initialize services
	googleVerifier := googleauth.NewVerifier(cfg.Google.ClientID)
	mailer := services.NewSMTPMailer(&cfg.SMTP)

	authService := services.NewAuthService(userRepo, refreshTokenRepo, googleVerifier, cfg)
	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo)
	appService := services.NewApplicationService(appRepo, jobRepo, mailer)
	contactService := services.NewContactService(contactRepo)
	subService := services.NewSubscriptionService(subRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	jobHandler := handlers.NewJobHandler(jobService)
	appHandler := handlers.NewApplicationHandler(appService)
	contactHandler := handlers.NewContactHandler(contactService)
	subHandler := handlers.NewSubscriptionHandler(subService)
	emailHandler := handlers.NewEmailHandler(mailer)

	// Health check
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	auth := middleware.AuthMiddleware(cfg, userRepo)
	admin := middleware.AdminOnly()

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/google", middleware.AuthRateLimiter(), authHandler.GoogleAuth)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", auth, authHandler.LogoutAll)
	authRoutes.Get("/check-user", auth, authHandler.CheckUser)

	// User management routes
	userRoutes := apiV1.Group("/users", auth)
	userRoutes.Get("/", admin, userHandler.List)
	userRoutes.Put("/activate/:id", admin, userHandler.ToggleActive)
	userRoutes.Get("/:id", userHandler.Get)
	userRoutes.Put("/:id", userHandler.Update)
	userRoutes.Delete("/:id", admin, userHandler.Delete)

	// Job routes (public reads, admin writes)
	jobRoutes := apiV1.Group("/jobs")
	jobRoutes.Get("/", jobHandler.List)
	jobRoutes.Get("/:id", jobHandler.Get)
	jobRoutes.Post("/", auth, admin, jobHandler.Create)
	jobRoutes.Put("/:id", auth, admin, jobHandler.Update)
	jobRoutes.Delete("/:id", auth, admin, jobHandler.Delete)

	// Application routes
	appRoutes := apiV1.Group("/applications", auth)
	appRoutes.Get("/", admin, appHandler.List)
	appRoutes.Get("/by-job/:id", admin, appHandler.ListByJob)
	appRoutes.Get("/by-user/:id", appHandler.ListByUser)
	appRoutes.Get("/by-status/:status", admin, appHandler.ListByStatus)
	appRoutes.Post("/:jobId", appHandler.Apply)
	appRoutes.Get("/:id", appHandler.Get)
	appRoutes.Put("/:id", admin, appHandler.UpdateStatus)

	// Contact routes (public create, admin reads)
	contactRoutes := apiV1.Group("/contacts")
	contactRoutes.Post("/", contactHandler.Create)
	contactRoutes.Get("/", auth, admin, contactHandler.List)
	contactRoutes.Get("/:id", auth, admin, contactHandler.Get)
	contactRoutes.Delete("/:id", auth, admin, contactHandler.Delete)

	// Subscription routes (public subscribe, admin management)
	subRoutes := apiV1.Group("/subscriptions")
	subRoutes.Post("/", subHandler.Subscribe)
	subRoutes.Get("/", auth, admin, subHandler.List)
	subRoutes.Get("/:id", auth, admin, subHandler.Get)
	subRoutes.Delete("/:id", auth, admin, subHandler.Unsubscribe)

	// Email routes (admin only)
	emailRoutes := apiV1.Group("/email", auth, admin)
	emailRoutes.Post("/send", emailHandler.Send)
}
