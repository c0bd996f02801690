package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/keonU206/Hey-Young-system/internal/adapters/http/middleware"
	"github.com/keonU206/Hey-Young-system/internal/adapters/http/routes"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/config"
	"github.com/keonU206/Hey-Young-system/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "github.com/keonU206/Hey-Young-system/docs" // Swagger docs
)

// @title Hey-Young Attend API
// @version 1.0
// @description Role-based attendance management backend for Hey-Young University

// @contact.name API Support
// @contact.email support@hey-young.ac.kr

// @host attend.hey-young.ac.kr
// @BasePath /api
// @schemes https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default settings and the bootstrap admin account
	if err := config.SeedDefaults(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed defaults: %v", err)
	}

	// Nightly system snapshot into the audit log (00:05 daily)
	auditService := services.NewAuditService(repositories.NewAuditLogRepository(db))
	cronService := services.NewCronService(services.NewReportService(db), auditService)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hey-Young Attend API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
