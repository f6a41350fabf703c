package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/MatheusPalmieri/finance/database"
	"github.com/MatheusPalmieri/finance/handlers"
	"github.com/MatheusPalmieri/finance/logger"
)

func main() {
	log := logger.New()

	// Connect to Database
	database.ConnectDB()

	// Initialize Fiber app
	app := fiber.New()

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health Check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Bills CRUD
	api.Get("/bills", handlers.ListBills)
	api.Post("/bills", handlers.CreateBill)
	api.Put("/bills/:id", handlers.UpdateBill)
	api.Delete("/bills/:id", handlers.DeleteBill)

	// Statement import pipeline
	api.Post("/import/preview", handlers.PreviewImport)
	api.Post("/import/commit", handlers.CommitImport)
	api.Post("/import/error-report", handlers.ExportErrorReport)

	// AI category suggestions
	api.Get("/analyze", handlers.SuggestCategories)

	// Start Server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Fatal().Err(app.Listen(":" + port)).Msg("server stopped")
}
