// Command server runs the travel backend HTTP API.
//
// Usage:
//
//	server
//	PORT=9090 LOG_LEVEL=debug server

// @title Travel Backend API
// @version 1.0.0
// @description Top attractions per city, aggregated from Google Places and TripAdvisor with a persistent snapshot-and-cache store.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-travel-backend/internal/config"
	httpapi "github.com/tbourn/go-travel-backend/internal/http"
	"github.com/tbourn/go-travel-backend/internal/observability"
	"github.com/tbourn/go-travel-backend/internal/provider"
	"github.com/tbourn/go-travel-backend/internal/provider/places"
	"github.com/tbourn/go-travel-backend/internal/provider/tripadvisor"
	"github.com/tbourn/go-travel-backend/internal/repo"
	"github.com/tbourn/go-travel-backend/internal/sysutil"

	_ "github.com/tbourn/go-travel-backend/docs" // swagger docs
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load .env if present; real deployments set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("opentelemetry setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("opentelemetry shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	retry := provider.RetryPolicy{
		MaxRetries:      uint64(cfg.Providers.DetailMaxRetries),
		InitialInterval: time.Second,
	}
	googleClient := places.NewClient(cfg.Providers.GoogleAPIKey, places.Options{
		BaseURL:      cfg.Providers.GoogleBaseURL,
		LanguageCode: cfg.Providers.LanguageCode,
		RPS:          cfg.Providers.RPS,
		Burst:        cfg.Providers.Burst,
		Retry:        retry,
		Logger:       log.With().Str("provider", "google").Logger(),
	})
	taClient := tripadvisor.NewClient(cfg.Providers.TripAdvisorAPIKey, tripadvisor.Options{
		BaseURL:      cfg.Providers.TripAdvisorBase,
		LanguageCode: cfg.Providers.LanguageCode,
		RPS:          cfg.Providers.RPS,
		Burst:        cfg.Providers.Burst,
		Retry:        retry,
		Logger:       log.With().Str("provider", "tripadvisor").Logger(),
	})

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, googleClient, taClient, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
