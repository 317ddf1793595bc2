package repo

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }
func intp(i int) *int         { return &i }
func boolp(b bool) *bool      { return &b }

func TestUpsertItem_MissingIdentity(t *testing.T) {
	db := newTestDB(t, &domain.ItemSummaryRow{})
	ctx := context.Background()

	for name, s := range map[string]*domain.Summary{
		"nil summary":   nil,
		"no source":     {ItemID: "x"},
		"bad source":    {Source: "yelp", ItemID: "x"},
		"empty item id": {Source: domain.SourceGoogle},
	} {
		if err := UpsertItem(ctx, db, s); !errors.Is(err, ErrMissingIdentity) {
			t.Fatalf("%s: expected ErrMissingIdentity, got %v", name, err)
		}
	}
}

func TestUpsertItem_GetItem_RoundTripExact(t *testing.T) {
	db := newTestDB(t, &domain.ItemSummaryRow{})
	ctx := context.Background()

	s := &domain.Summary{
		Source:          domain.SourceGoogle,
		ItemID:          "place-1",
		Name:            strp("Louvre Museum"),
		Address:         strp("Rue de Rivoli, 75001 Paris"),
		Rating:          f64p(4.7),
		ReviewCount:     intp(284501),
		CategoryPrimary: strp("museum"),
		Types:           []string{"museum", "tourist_attraction"},
		Wheelchair:      boolp(true),
		Hours:           []string{"Monday: 9:00 AM – 6:00 PM", "Tuesday: Closed"},
		Website:         strp("https://www.louvre.fr/"),
		Phone:           strp("01 40 20 50 50"),
		Lat:             f64p(48.8606),
		Lng:             f64p(2.3376),
	}
	if err := UpsertItem(ctx, db, s); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	got, err := GetItem(ctx, db, domain.SourceGoogle, "place-1")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if !reflect.DeepEqual(s, got) {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", got, s)
	}
}

func TestUpsertItem_NullableFieldsStayNull(t *testing.T) {
	db := newTestDB(t, &domain.ItemSummaryRow{})
	ctx := context.Background()

	// TripAdvisor-shaped summary: no wheelchair flag, hours, or phone.
	s := &domain.Summary{
		Source: domain.SourceTripAdvisor,
		ItemID: "loc-9",
		Name:   strp("Seine River Cruise"),
		Types:  []string{"Boat Tours"},
	}
	if err := UpsertItem(ctx, db, s); err != nil {
		t.Fatalf("UpsertItem: %v", err)
	}

	got, err := GetItem(ctx, db, domain.SourceTripAdvisor, "loc-9")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Rating != nil || got.ReviewCount != nil || got.Wheelchair != nil ||
		got.Hours != nil || got.Phone != nil || got.Lat != nil || got.Lng != nil {
		t.Fatalf("nil fields must stay nil, got %+v", got)
	}

	// Columnized representation mirrors the record: NULLs, not zero values.
	var row domain.ItemSummaryRow
	if err := db.First(&row, "source = ? AND item_id = ?", domain.SourceTripAdvisor, "loc-9").Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if row.Rating != nil || row.HoursJSON != nil || row.Wheelchair != nil {
		t.Fatalf("columnized NULLs diverged: %+v", row)
	}
	if row.TypesJSON == nil || *row.TypesJSON != `["Boat Tours"]` {
		t.Fatalf("types column mismatch: %v", row.TypesJSON)
	}
}

func TestUpsertItem_Overwrites(t *testing.T) {
	db := newTestDB(t, &domain.ItemSummaryRow{})
	ctx := context.Background()

	first := &domain.Summary{Source: domain.SourceGoogle, ItemID: "p", Name: strp("Old"), Rating: f64p(3.0)}
	second := &domain.Summary{Source: domain.SourceGoogle, ItemID: "p", Name: strp("New")}

	if err := UpsertItem(ctx, db, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := UpsertItem(ctx, db, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := GetItem(ctx, db, domain.SourceGoogle, "p")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Name == nil || *got.Name != "New" {
		t.Fatalf("expected overwritten name, got %+v", got)
	}
	if got.Rating != nil {
		t.Fatalf("stale rating survived overwrite: %+v", got)
	}

	var count int64
	if err := db.Model(&domain.ItemSummaryRow{}).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("expected one row, count=%d err=%v", count, err)
	}
}

func TestGetItem_NotFound(t *testing.T) {
	db := newTestDB(t, &domain.ItemSummaryRow{})
	_, err := GetItem(context.Background(), db, domain.SourceGoogle, "missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
