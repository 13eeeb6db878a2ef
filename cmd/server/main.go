package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/sherlock/internal/config"
	"github.com/stemsi/sherlock/internal/csvstore"
	"github.com/stemsi/sherlock/internal/database"
	"github.com/stemsi/sherlock/internal/fallback"
	"github.com/stemsi/sherlock/internal/handler"
	"github.com/stemsi/sherlock/internal/logger"
	"github.com/stemsi/sherlock/internal/middleware"
	"github.com/stemsi/sherlock/internal/repository"
	"github.com/stemsi/sherlock/internal/router"
	"github.com/stemsi/sherlock/internal/search"
	"github.com/stemsi/sherlock/internal/service"
	"github.com/stemsi/sherlock/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Sherlock student lookup")

	policy, err := search.ParsePolicy(cfg.MatchPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid MATCH_POLICY")
	}

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	// A missing or broken database never stops the server; lookups fall
	// back to the CSV export and the built-in roster.
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("PostgreSQL disabled")
	} else {
		defer pool.Close()
	}

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, search cache disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Sources ────────────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	csvStore := csvstore.NewStore(cfg.CSVPaths)
	fallbackStore := fallback.NewStore()

	var cache service.ResultCache
	if rc := service.NewRedisCache(rdb, cfg.SearchCacheTTL); rc != nil && cfg.SearchCacheTTL > 0 {
		cache = rc
	}

	// ─── Initialize Services ──────────────────────────────────────────
	studentService := service.NewStudentService(studentRepo, csvStore, fallbackStore, cache, policy, log)
	diagnosticsService := service.NewDiagnosticsService(studentRepo, rdb, csvStore, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Student: handler.NewStudentHandler(studentService),
		Osint:   handler.NewOsintHandler(),
		System:  handler.NewSystemHandler(diagnosticsService, csvStore, log),
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		go limiter.Run(ctx)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().
			Str("addr", ":"+cfg.ServerPort).
			Str("match_policy", string(policy)).
			Strs("csv_paths", cfg.CSVPaths).
			Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
