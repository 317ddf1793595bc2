package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	if _, err := OpenSQLite(filepath.Join(t.TempDir(), "nope", "x.db")); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasTable("city_top10") || !m.HasTable("item_summary") {
		t.Fatalf("expected unified tables after Migrate")
	}
}

func TestMigrate_RewritesLegacySnapshotTable(t *testing.T) {
	db := newTestDB(t)

	// Pre-unification shape: one provider, place_ids_json, city_key PK.
	if err := db.Exec(`
		CREATE TABLE city_top10 (
			city_key       TEXT PRIMARY KEY,
			city_display   TEXT,
			place_ids_json TEXT NOT NULL,
			created_at_utc TEXT NOT NULL
		)`).Error; err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if err := db.Exec(`
		INSERT INTO city_top10 (city_key, city_display, place_ids_json, created_at_utc)
		VALUES ('paris', 'Paris', '["a","b","c"]', '2024-05-01T10:00:00Z')`).Error; err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Legacy rows default to (google, attraction).
	ids, err := GetSnapshot(context.Background(), db, "Paris", domain.SourceGoogle, domain.ItemTypeAttraction)
	if err != nil {
		t.Fatalf("GetSnapshot after migration: %v", err)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Fatalf("unexpected migrated ids: %v", ids)
	}
	if db.Migrator().HasTable("city_top10_legacy") {
		t.Fatalf("legacy table should be dropped")
	}
}

func TestMigrate_LegacyWithoutIDColumn_KeepsEmptyLists(t *testing.T) {
	db := newTestDB(t)

	if err := db.Exec(`
		CREATE TABLE city_top10 (
			city_key       TEXT PRIMARY KEY,
			city_display   TEXT,
			created_at_utc TEXT NOT NULL
		)`).Error; err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	if err := db.Exec(`
		INSERT INTO city_top10 (city_key, city_display, created_at_utc)
		VALUES ('rome', 'Rome', '2024-05-01T10:00:00Z')`).Error; err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	ids, err := GetSnapshot(context.Background(), db, "rome", domain.SourceGoogle, domain.ItemTypeAttraction)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty id list, got %v", ids)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := SaveSnapshot(context.Background(), db, "Oslo", domain.SourceTripAdvisor, domain.ItemTypeActivity, []string{"1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	ids, err := GetSnapshot(context.Background(), db, "oslo", domain.SourceTripAdvisor, domain.ItemTypeActivity)
	if err != nil || len(ids) != 1 {
		t.Fatalf("snapshot lost across re-migration: ids=%v err=%v", ids, err)
	}
}
