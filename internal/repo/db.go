// Package repo implements the data persistence layer for snapshots and
// item summaries, backed by GORM. This file contains database
// bootstrapping helpers for SQLite (pure Go driver) and schema migrations,
// including the one-time rewrite of the legacy single-provider snapshot
// table into the unified composite-key shape.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// WAL mode keeps concurrent readers from tripping over the single writer.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	// Store calls show up as spans alongside HTTP/provider traces.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate brings the schema to the unified shape. It first rewrites a
// legacy city_top10 table if one is present, then runs AutoMigrate for
// the current models. Safe to run on every startup.
func Migrate(db *gorm.DB) error {
	if err := migrateLegacySnapshots(db); err != nil {
		return err
	}
	return db.AutoMigrate(
		&domain.CitySnapshot{},
		&domain.ItemSummaryRow{},
	)
}

// migrateLegacySnapshots detects the pre-unification snapshot table
// (city_key PK, place_ids_json, no source/item_type columns) and rewrites
// it into the composite-key shape. Legacy rows are assigned
// source=google, item_type=attraction; the assignment is lossy and
// one-directional. No-op when the table is absent or already unified.
func migrateLegacySnapshots(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable("city_top10") {
		return nil
	}

	unified, err := hasColumn(db, "city_top10", "source")
	if err != nil {
		return err
	}
	if unified {
		return nil
	}

	hasIDs, err := hasColumn(db, "city_top10", "place_ids_json")
	if err != nil {
		return err
	}

	if err := m.RenameTable("city_top10", "city_top10_legacy"); err != nil {
		return err
	}
	if err := db.AutoMigrate(&domain.CitySnapshot{}); err != nil {
		return err
	}

	copySQL := `
		INSERT OR REPLACE INTO city_top10
			(city_key, city_display, source, item_type, item_ids_json, created_at_utc)
		SELECT city_key, city_display, 'google', 'attraction', place_ids_json, created_at_utc
		FROM city_top10_legacy`
	if !hasIDs {
		// Worst case: keep the city rows but with empty id lists.
		copySQL = `
		INSERT OR REPLACE INTO city_top10
			(city_key, city_display, source, item_type, item_ids_json, created_at_utc)
		SELECT city_key, city_display, 'google', 'attraction', '[]', created_at_utc
		FROM city_top10_legacy`
	}
	if err := db.Exec(copySQL).Error; err != nil {
		return err
	}

	return m.DropTable("city_top10_legacy")
}

// hasColumn reports whether table has a column named col. Uses the
// pragma_table_info table-valued function so it also works for tables
// GORM has no model for.
func hasColumn(db *gorm.DB, table, col string) (bool, error) {
	var n int64
	err := db.Raw(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?",
		table, col,
	).Scan(&n).Error
	return n > 0, err
}
