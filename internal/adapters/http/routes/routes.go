package routes

import (
	"loandesk/internal/adapters/http/handlers"
	"loandesk/internal/adapters/http/middleware"
	"loandesk/internal/adapters/persistence/repositories"
	"loandesk/internal/config"
	"loandesk/internal/core/services"
	"loandesk/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	loanService := services.NewLoanService(loanRepo)
	calculator := services.NewCalculatorService()

	// Shared validation engine
	validate := validation.NewEngine()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, db)
	authHandler := handlers.NewAuthHandler(authService, validate)
	loanHandler := handlers.NewLoanHandler(loanService, calculator, validate)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API group
	api := app.Group("/api")

	// User routes (public, rate limited)
	userRoutes := api.Group("/users")
	userRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	userRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)

	// Loan routes (authenticated)
	loanRoutes := api.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg, userRepo))

	loanRoutes.Post("/calculate", loanHandler.Calculate)
	loanRoutes.Post("/", loanHandler.Create)
	loanRoutes.Get("/", loanHandler.List)
	loanRoutes.Get("/:id", loanHandler.GetByID)
	loanRoutes.Patch("/:id", loanHandler.Update)
	loanRoutes.Delete("/:id", loanHandler.Delete)
	loanRoutes.Patch("/:id/status", loanHandler.UpdateStatus)
}
