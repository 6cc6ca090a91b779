package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/therapick/therapick-api/internal/config"
	"github.com/therapick/therapick-api/internal/database"
	"github.com/therapick/therapick-api/internal/directory"
	"github.com/therapick/therapick-api/internal/handlers"
	"github.com/therapick/therapick-api/internal/middleware"
	"github.com/therapick/therapick-api/internal/services"
	"github.com/therapick/therapick-api/internal/types"
	"github.com/therapick/therapick-api/internal/utils"
)

func main() {
	// Load .env if present, real environment wins
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Select the therapist directory provider
	var dir directory.Client
	if cfg.TherapAPIKey != "" {
		dir = directory.NewHTTP(cfg.TherapAPIKey, cfg.TherapAPIBaseURL)
	} else {
		dir = directory.NewStatic()
	}
	log.Printf("Therapist directory provider: %s", dir.Mode())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("therapick")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	appointmentService := services.NewAppointmentService(db)
	moodService := services.NewMoodService(db)
	savedService := services.NewSavedTherapistService(db, dir)

	// Handlers
	authHandler := &handlers.AuthHandler{Service: authService}
	therapistHandler := &handlers.TherapistHandler{Dir: dir}
	appointmentHandler := &handlers.AppointmentHandler{Service: appointmentService}
	moodHandler := &handlers.MoodHandler{Service: moodService}
	savedHandler := &handlers.SavedTherapistHandler{Service: savedService}

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Health
	api.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db, dir)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// Auth routes, credential endpoints rate limited per IP
	limiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)
	protect := middleware.Protect(db, cfg.JWTSecret)

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(limiter), authHandler.Register)
	auth.Post("/login", middleware.RateLimit(limiter), authHandler.Login)
	auth.Post("/guest", middleware.RateLimit(limiter), authHandler.Guest)
	auth.Get("/me", protect, authHandler.Me)
	auth.Put("/profile", protect, authHandler.UpdateProfile)
	auth.Put("/change-password", protect, authHandler.ChangePassword)

	// Therapist directory routes (public, user attached when a token is
	// sent), static segments before :id
	therapists := api.Group("/therapists", middleware.OptionalAuth(db, cfg.JWTSecret))
	therapists.Get("/search", therapistHandler.Search)
	therapists.Get("/specialties", therapistHandler.Specialties)
	therapists.Get("/:id", therapistHandler.GetByID)
	therapists.Get("/:id/reviews", therapistHandler.Reviews)

	// Appointment routes
	appointments := api.Group("/appointments", protect)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/", appointmentHandler.List)
	appointments.Get("/upcoming", appointmentHandler.Upcoming)
	appointments.Get("/:id", appointmentHandler.Get)
	appointments.Put("/:id", appointmentHandler.Update)
	appointments.Delete("/:id", appointmentHandler.Cancel)

	// Mood journal routes
	moods := api.Group("/moods", protect)
	moods.Post("/", moodHandler.Log)
	moods.Get("/", moodHandler.List)
	moods.Get("/stats", moodHandler.Stats)
	moods.Delete("/:id", moodHandler.Delete)

	// Saved therapist routes
	saved := api.Group("/saved-therapists", protect)
	saved.Post("/", savedHandler.Save)
	saved.Get("/", savedHandler.List)
	saved.Get("/check/:therapistId", savedHandler.Check)
	saved.Delete("/:therapistId", savedHandler.Remove)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Route not found")
	})

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler renders every error as the standard error envelope.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var appErr *types.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	default:
		log.Printf("Unhandled error on %s: %v", c.OriginalURL(), err)
	}

	return utils.ErrorResponse(c, code, message)
}
