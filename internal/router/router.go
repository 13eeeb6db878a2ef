package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/sherlock/internal/config"
	"github.com/stemsi/sherlock/internal/handler"
	"github.com/stemsi/sherlock/internal/middleware"
	"github.com/stemsi/sherlock/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student *handler.StudentHandler
	Osint   *handler.OsintHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// limiter may be nil to disable rate limiting.
func SetupRouter(
	handlers *Handlers,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	api := router.Group("/api/v1")

	// ─── Record Lookups ────────────────────────────────────────────────
	// Responses carry student data and must never be cached.
	records := api.Group("")
	records.Use(middleware.NoStore())
	if limiter != nil {
		records.Use(limiter.Middleware())
	}
	{
		records.GET("/search", handlers.Student.Search)
		records.GET("/students", handlers.Student.List)
		records.GET("/students/profile", handlers.Student.Profile)
		records.GET("/data", handlers.System.RawData)
		records.POST("/osint", handlers.Osint.Report)
	}

	// ─── Operations ────────────────────────────────────────────────────
	api.GET("/diagnostics", middleware.NoStore(), handlers.System.Diagnostics)

	return router
}
