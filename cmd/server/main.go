package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/mpopescu/lidl-receipts/internal/config"
	"github.com/mpopescu/lidl-receipts/internal/database"
	"github.com/mpopescu/lidl-receipts/internal/handlers"
	"github.com/mpopescu/lidl-receipts/internal/middleware"
	"github.com/mpopescu/lidl-receipts/internal/ocr"
	"github.com/mpopescu/lidl-receipts/internal/services"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create admin user if it doesn't exist
	if err := database.EnsureAdminUser(db, cfg); err != nil {
		log.Printf("Warning: Could not ensure admin user: %v", err)
	}

	// Initialize S3-compatible storage for receipt images
	storageService, err := services.NewStorageService(
		cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	ctx := context.Background()
	if err := storageService.EnsureBucket(ctx); err != nil {
		log.Printf("Warning: Failed to ensure S3 bucket exists: %v", err)
	}

	ocrEngine := ocr.NewTesseractEngine(cfg.OCRLanguage)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handlers with dependencies
	h := handlers.New(db, cfg, storageService, ocrEngine)
	receiptHandler := handlers.NewReceiptHandler(db, cfg, storageService, ocrEngine)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)

	// User routes (authenticated)
	users := api.Group("/users", middleware.AuthRequired(cfg))
	users.Get("/:id", h.GetUser)
	users.Put("/:id", h.UpdateUser)

	// Admin routes (admin only)
	admin := api.Group("/admin", middleware.AuthRequired(cfg), middleware.AdminRequired())
	admin.Get("/users", h.AdminListUsers)
	admin.Get("/users/:id", h.AdminGetUser)
	admin.Put("/users/:id", h.AdminUpdateUser)
	admin.Delete("/users/:id", h.AdminDeleteUser)

	// Receipt routes (authenticated)
	receipts := api.Group("/receipts", middleware.AuthRequired(cfg))
	receipts.Post("/upload", receiptHandler.UploadReceipt)
	receipts.Get("/", receiptHandler.ListReceipts)
	receipts.Get("/:id", receiptHandler.GetReceipt)
	receipts.Post("/:id/reparse", receiptHandler.ReparseReceipt)
	receipts.Delete("/:id", receiptHandler.DeleteReceipt)
	receipts.Get("/:id/image", receiptHandler.GetReceiptImage)

	// Get port from environment or default
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
