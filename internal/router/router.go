package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/config"
	"github.com/stemsi/academia-backend/internal/handler"
	"github.com/stemsi/academia-backend/internal/middleware"
	"github.com/stemsi/academia-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Department *handler.DepartmentHandler
	Student    *handler.StudentHandler
	Enrollment *handler.EnrollmentHandler
	Export     *handler.ExportHandler
	System     *handler.SystemHandler
}

// SetupRouter configures the Gin engine. rateLimiter may be nil, in which
// case the API is not rate limited.
func SetupRouter(
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Spreadsheets are already zip-compressed.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Quality:   middleware.DefaultBrotliConfig.Quality,
		MinLength: middleware.DefaultBrotliConfig.MinLength,
		Skipper:   middleware.SkipPathSuffixes("/export"),
	}))

	router.GET("/health", handlers.System.Health)

	// ─── API v1 ────────────────────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())
	if rateLimiter != nil {
		api.Use(rateLimiter.Middleware())
	}

	departments := api.Group("/departments")
	{
		departments.GET("", handlers.Department.GetAll)
		departments.GET("/:id", handlers.Department.GetByID)
		departments.POST("", handlers.Department.Create)
		departments.PUT("", handlers.Department.Update)
		departments.DELETE("/:id", handlers.Department.Delete)
	}

	students := api.Group("/students")
	{
		students.GET("", handlers.Student.GetAll)
		students.GET("/export", handlers.Export.ExportStudents)
		students.GET("/:id", handlers.Student.GetByID)
		students.POST("", handlers.Student.Create)
		students.PUT("", handlers.Student.Update)
		students.DELETE("/:id", handlers.Student.Delete)
	}

	enrollments := api.Group("/enrollments")
	{
		enrollments.GET("", handlers.Enrollment.GetAll)
		enrollments.GET("/:id", handlers.Enrollment.GetByID)
		enrollments.POST("", handlers.Enrollment.Create)
		enrollments.PUT("", handlers.Enrollment.Update)
		enrollments.DELETE("/:id", handlers.Enrollment.Delete)
	}

	return router
}
