// Package repo implements the data persistence layer for snapshots and
// item summaries, backed by GORM. This file provides repository functions
// for the CitySnapshot model.
//
// All functions are context-aware and accept a *gorm.DB handle, making
// them safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only
// persistence and query composition. City names are normalized through
// domain.NormalizeCity on every read and write path.
//
// Error semantics:
//   - When a snapshot is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors the raw gorm error is propagated; no retry at this layer.
package repo

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetSnapshot loads the ordered item id list stored for the
// (city, source, itemType) triple, or ErrNotFound when no snapshot exists.
func GetSnapshot(ctx context.Context, db *gorm.DB, city string, source domain.Source, itemType domain.ItemType) ([]string, error) {
	var snap domain.CitySnapshot
	err := db.WithContext(ctx).
		Where("city_key = ? AND source = ? AND item_type = ?",
			domain.NormalizeCity(city), source, itemType).
		First(&snap).Error
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(snap.ItemIDsJSON), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SaveSnapshot upserts the Top-N id list for (city, source, itemType).
// The write always overwrites prior content and timestamp (last writer
// wins) and is immediately visible to subsequent reads. itemIDs may be
// empty: an empty snapshot is a valid, permanently cached "no results".
func SaveSnapshot(ctx context.Context, db *gorm.DB, city string, source domain.Source, itemType domain.ItemType, itemIDs []string) error {
	if itemIDs == nil {
		itemIDs = []string{}
	}
	raw, err := json.Marshal(itemIDs)
	if err != nil {
		return err
	}

	snap := &domain.CitySnapshot{
		CityKey:      domain.NormalizeCity(city),
		Source:       source,
		ItemType:     itemType,
		CityDisplay:  strings.TrimSpace(city),
		ItemIDsJSON:  string(raw),
		CreatedAtUTC: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "city_key"}, {Name: "source"}, {Name: "item_type"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"city_display", "item_ids_json", "created_at_utc",
			}),
		}).
		Create(snap).Error
}

// CountSnapshots returns the total number of stored snapshots.
func CountSnapshots(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.CitySnapshot{}).
		Count(&total).Error
	return total, err
}

// ListSnapshotsPage returns a paginated slice of snapshots ordered by
// creation time descending, then city key for a deterministic tiebreak.
// The caller computes offset and limit (e.g. (page-1)*pageSize).
func ListSnapshotsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.CitySnapshot, error) {
	var out []domain.CitySnapshot
	err := db.WithContext(ctx).
		Order("created_at_utc desc, city_key asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
