// Command travelctl is a CLI for the travel backend pipeline. It talks
// to the same SQLite store and providers as the server, so results and
// cache state are shared with a locally running instance.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-travel-backend/internal/config"
	"github.com/tbourn/go-travel-backend/internal/provider"
	"github.com/tbourn/go-travel-backend/internal/provider/places"
	"github.com/tbourn/go-travel-backend/internal/provider/tripadvisor"
	"github.com/tbourn/go-travel-backend/internal/repo"
	"github.com/tbourn/go-travel-backend/internal/services"
	"github.com/tbourn/go-travel-backend/internal/sysutil"
)

var rootCmd = &cobra.Command{
	Use:           "travelctl",
	Short:         "Query top attractions per city from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.AddCommand(newSearchCmd(), newNearbyCmd(), newSnapshotsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newService builds the full pipeline from the environment: config,
// store, and both provider clients.
func newService() (*services.SearchService, *gorm.DB, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.Migrate(db); err != nil {
		return nil, nil, err
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

	svc := services.NewSearchService(db, googleClient, taClient)
	svc.TopN = cfg.DefaultTopN
	svc.SearchPool = cfg.SearchPool
	return svc, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
