package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Summary is the unified item record shared by every provider. Fields a
// provider cannot supply stay nil; normalization never fabricates values.
// Numeric fields are always coerced to numeric types at the normalization
// boundary, never carried through as provider-native strings.
//
// Types holds Google "types" or TripAdvisor "groups", a deliberate
// schema impedance match, the semantics differ per source.
type Summary struct {
	Source Source `json:"source"`
	ItemID string `json:"item_id"`

	Name            *string  `json:"name"`
	Address         *string  `json:"address"`
	Rating          *float64 `json:"rating"`
	ReviewCount     *int     `json:"review_count"`
	CategoryPrimary *string  `json:"category_primary"`
	Types           []string `json:"types"`

	// Wheelchair is tri-state: true/false when the provider reported it,
	// nil when unknown.
	Wheelchair *bool    `json:"wheelchair_accessible_entrance"`
	Hours      []string `json:"opening_hours_weekday_descriptions"`

	Website *string  `json:"website"`
	Phone   *string  `json:"phone"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// Provenance values carried on a Result. Request-scoped metadata only,
// never persisted.
const (
	CityFromSnapshot = "snapshot"
	CityComputed     = "computed"

	ItemFromCache = "cache"
	ItemFromAPI   = "api"
)

// Result is one pipeline output row: the unified summary plus provenance
// for both the city-level and item-level resolution.
type Result struct {
	Summary *Summary `json:"summary"`
	// CitySource is "snapshot" when the Top-N id list already existed,
	// "computed" when this request computed it.
	CitySource string `json:"city_source"`
	// ItemSource is "cache" on an item-cache hit, "api" after a live fetch.
	ItemSource string `json:"item_source"`
}

// cityFolder case-folds city names so that keys compare equal across
// Unicode casings (e.g. "İstanbul" vs "istanbul").
var cityFolder = cases.Fold()

// NormalizeCity maps a user-supplied city name to its canonical snapshot
// key: trimmed and case-folded. Every snapshot read and write path must
// go through this one function or snapshots silently fragment.
func NormalizeCity(city string) string {
	return cityFolder.String(strings.TrimSpace(city))
}
