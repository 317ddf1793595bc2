// Package domain defines the persistence models for city snapshots and
// cached item summaries. These types are mapped with GORM and form the
// core data layer of the attractions backend.
package domain

import (
	"time"
)

// Source identifies an upstream travel-data provider.
type Source string

// ItemType distinguishes the kind of item a snapshot holds.
type ItemType string

const (
	// SourceGoogle is the Google Places provider.
	SourceGoogle Source = "google"
	// SourceTripAdvisor is the TripAdvisor Content API provider.
	SourceTripAdvisor Source = "tripadvisor"

	// ItemTypeAttraction covers sights and landmarks.
	ItemTypeAttraction ItemType = "attraction"
	// ItemTypeActivity covers tours and things to do.
	ItemTypeActivity ItemType = "activity"
)

// Valid reports whether s is a known provider source.
func (s Source) Valid() bool {
	return s == SourceGoogle || s == SourceTripAdvisor
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	return t == ItemTypeAttraction || t == ItemTypeActivity
}

// CitySnapshot is the persisted Top-N result for one (city, source,
// item_type) triple. Once written it is treated as a static snapshot:
// there is no expiry or refresh path, only an explicit re-save.
//
// Fields:
//   - CityKey: normalized city name (see NormalizeCity); part of the PK.
//   - Source / ItemType: remaining PK components.
//   - CityDisplay: the city exactly as the user typed it (trimmed).
//   - ItemIDsJSON: ordered JSON array of provider item identifiers. The
//     order encodes the ranking decision made at computation time.
//   - CreatedAtUTC: snapshot creation time.
type CitySnapshot struct {
	CityKey      string    `json:"city_key"       gorm:"column:city_key;type:varchar(255);primaryKey"`
	Source       Source    `json:"source"         gorm:"column:source;type:varchar(32);primaryKey"`
	ItemType     ItemType  `json:"item_type"      gorm:"column:item_type;type:varchar(32);primaryKey"`
	CityDisplay  string    `json:"city_display"   gorm:"column:city_display;type:varchar(255)"`
	ItemIDsJSON  string    `json:"-"              gorm:"column:item_ids_json;type:text;not null"`
	CreatedAtUTC time.Time `json:"created_at_utc" gorm:"column:created_at_utc"`
}

// TableName returns the database table name for CitySnapshot.
func (CitySnapshot) TableName() string { return "city_top10" }

// ItemSummaryRow is the cached detail record for one item, keyed by
// (source, item_id). The columnized fields exist for indexing and ad-hoc
// querying; SummaryJSON holds the full normalized record and is the
// authoritative representation. Every write rewrites both together.
type ItemSummaryRow struct {
	Source          Source    `json:"source"           gorm:"column:source;type:varchar(32);primaryKey;index:idx_item_review_count,priority:1;index:idx_item_name,priority:1"`
	ItemID          string    `json:"item_id"          gorm:"column:item_id;type:varchar(255);primaryKey"`
	Name            *string   `json:"name"             gorm:"column:name;type:varchar(512);index:idx_item_name,priority:2"`
	Address         *string   `json:"address"          gorm:"column:address;type:varchar(512)"`
	Rating          *float64  `json:"rating"           gorm:"column:rating"`
	ReviewCount     *int      `json:"review_count"     gorm:"column:review_count;index:idx_item_review_count,priority:2"`
	CategoryPrimary *string   `json:"category_primary" gorm:"column:category_primary;type:varchar(255)"`
	TypesJSON       *string   `json:"-"                gorm:"column:types_json;type:text"`
	Wheelchair      *bool     `json:"wheelchair_accessible_entrance" gorm:"column:wheelchair_accessible_entrance"`
	HoursJSON       *string   `json:"-"                gorm:"column:opening_hours_json;type:text"`
	Website         *string   `json:"website"          gorm:"column:website;type:varchar(1024)"`
	Phone           *string   `json:"phone"            gorm:"column:phone;type:varchar(64)"`
	Lat             *float64  `json:"lat"              gorm:"column:lat"`
	Lng             *float64  `json:"lng"              gorm:"column:lng"`
	SummaryJSON     string    `json:"-"                gorm:"column:summary_json;type:text;not null"`
	FetchedAtUTC    time.Time `json:"fetched_at_utc"   gorm:"column:fetched_at_utc"`
}

// TableName returns the database table name for ItemSummaryRow.
func (ItemSummaryRow) TableName() string { return "item_summary" }
