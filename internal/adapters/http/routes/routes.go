package routes

import (
	"github.com/keonU206/Hey-Young-system/internal/adapters/http/handlers"
	"github.com/keonU206/Hey-Young-system/internal/adapters/http/middleware"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/config"
	"github.com/keonU206/Hey-Young-system/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	departmentRepo := repositories.NewDepartmentRepository(db)
	semesterRepo := repositories.NewSemesterRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Initialize services
	auditService := services.NewAuditService(auditRepo)
	authService := services.NewAuthService(userRepo, settingRepo, auditService, cfg)
	userService := services.NewUserService(userRepo, auditService)
	departmentService := services.NewDepartmentService(departmentRepo, auditService)
	semesterService := services.NewSemesterService(semesterRepo, auditService)
	courseService := services.NewCourseService(courseRepo, userRepo, auditService)
	settingService := services.NewSettingService(settingRepo, auditService)
	reportService := services.NewReportService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	semesterHandler := handlers.NewSemesterHandler(semesterService)
	courseHandler := handlers.NewCourseHandler(courseService)
	settingHandler := handlers.NewSettingHandler(settingService)
	logHandler := handlers.NewLogHandler(auditService)
	reportHandler := handlers.NewReportHandler(reportService, auditService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	// Public auth routes
	api.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	api.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	api.Post("/logout", authHandler.Logout)

	// Session-authenticated routes
	api.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Password change authenticates by body, not by session, so an
	// expired token does not lock the user out of rotating a password.
	api.Post("/profile/change-password", middleware.StrictRateLimiter(), userHandler.ChangePassword)

	// Admin routes. Every route in this group passes through the same
	// gate; logs and reports get no special path around it.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminOnly())

	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Patch("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)

	admin.Get("/departments", departmentHandler.List)
	admin.Post("/departments", departmentHandler.Create)
	admin.Patch("/departments/:id", departmentHandler.Update)
	admin.Delete("/departments/:id", departmentHandler.Delete)

	admin.Get("/semesters", semesterHandler.List)
	admin.Post("/semesters", semesterHandler.Create)
	admin.Patch("/semesters/:id", semesterHandler.Update)
	admin.Delete("/semesters/:id", semesterHandler.Delete)

	admin.Get("/courses", courseHandler.List)
	admin.Post("/courses", courseHandler.Create)
	admin.Patch("/courses/:id", courseHandler.Update)
	admin.Delete("/courses/:id", courseHandler.Delete)

	admin.Get("/setting", settingHandler.Get)
	admin.Patch("/setting", settingHandler.Update)

	admin.Get("/logs", logHandler.Recent)
	admin.Get("/reports/system", reportHandler.System)
	admin.Get("/reports/errors", reportHandler.Errors)
}
