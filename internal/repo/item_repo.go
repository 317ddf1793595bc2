// Package repo implements the data persistence layer for snapshots and
// item summaries, backed by GORM. This file provides repository functions
// for the ItemSummaryRow model, the read-through detail cache.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

// ErrMissingIdentity is returned by UpsertItem when the summary lacks its
// source or item id. Never retried; surfaced to the caller immediately.
var ErrMissingIdentity = errors.New("summary must include source and item_id")

// GetItem loads the cached unified summary for (source, itemID), or
// ErrNotFound on a cache miss. The summary is reconstructed from the full
// stored record, so it round-trips exactly what UpsertItem was given.
func GetItem(ctx context.Context, db *gorm.DB, source domain.Source, itemID string) (*domain.Summary, error) {
	var row domain.ItemSummaryRow
	err := db.WithContext(ctx).
		Where("source = ? AND item_id = ?", source, itemID).
		First(&row).Error
	if err != nil {
		return nil, err
	}

	var s domain.Summary
	if err := json.Unmarshal([]byte(row.SummaryJSON), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertItem inserts or overwrites the cache row for s. Both the
// columnized fields and the full record are rewritten together so the two
// representations cannot diverge.
func UpsertItem(ctx context.Context, db *gorm.DB, s *domain.Summary) error {
	if s == nil || !s.Source.Valid() || s.ItemID == "" {
		return ErrMissingIdentity
	}

	full, err := json.Marshal(s)
	if err != nil {
		return err
	}
	typesJSON, err := marshalOptList(s.Types)
	if err != nil {
		return err
	}
	hoursJSON, err := marshalOptList(s.Hours)
	if err != nil {
		return err
	}

	row := &domain.ItemSummaryRow{
		Source:          s.Source,
		ItemID:          s.ItemID,
		Name:            s.Name,
		Address:         s.Address,
		Rating:          s.Rating,
		ReviewCount:     s.ReviewCount,
		CategoryPrimary: s.CategoryPrimary,
		TypesJSON:       typesJSON,
		Wheelchair:      s.Wheelchair,
		HoursJSON:       hoursJSON,
		Website:         s.Website,
		Phone:           s.Phone,
		Lat:             s.Lat,
		Lng:             s.Lng,
		SummaryJSON:     string(full),
		FetchedAtUTC:    time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "item_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

// marshalOptList serializes a list column, keeping SQL NULL for an absent
// list (as opposed to an empty one).
func marshalOptList(v []string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}
