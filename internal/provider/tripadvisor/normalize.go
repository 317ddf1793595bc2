package tripadvisor

import (
	"strconv"
	"strings"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

// Summarize normalizes a details record into the unified summary schema.
// String-encoded numerics are coerced; malformed or absent ones stay
// nil. Wheelchair access, opening hours, and phone are never populated
// here since the Content API does not expose them in the fields the
// adapter requests.
func Summarize(loc *Location) *domain.Summary {
	s := &domain.Summary{
		Source: domain.SourceTripAdvisor,
		ItemID: loc.LocationID,
		Types:  groupNames(loc.Groups),
	}
	if loc.Name != "" {
		name := loc.Name
		s.Name = &name
	}
	if addr := formatAddress(loc.AddressObj); addr != "" {
		s.Address = &addr
	}
	if loc.Rating != "" {
		if v, err := strconv.ParseFloat(loc.Rating, 64); err == nil {
			s.Rating = &v
		}
	}
	if loc.NumReviews != "" {
		if v, err := strconv.Atoi(loc.NumReviews); err == nil {
			s.ReviewCount = &v
		}
	}
	if loc.Category != nil && loc.Category.Name != "" {
		cat := loc.Category.Name
		s.CategoryPrimary = &cat
	}
	if loc.WebURL != "" {
		web := loc.WebURL
		s.Website = &web
	}
	if loc.Latitude != "" {
		if v, err := strconv.ParseFloat(loc.Latitude, 64); err == nil {
			s.Lat = &v
		}
	}
	if loc.Longitude != "" {
		if v, err := strconv.ParseFloat(loc.Longitude, 64); err == nil {
			s.Lng = &v
		}
	}
	return s
}

// ReviewCountOf parses the candidate's review count for ranking, zero
// when absent or malformed.
func ReviewCountOf(loc Location) int {
	if loc.NumReviews == "" {
		return 0
	}
	v, err := strconv.Atoi(loc.NumReviews)
	if err != nil {
		return 0
	}
	return v
}

func groupNames(groups []NamedEntity) []string {
	names := []string{}
	for _, g := range groups {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}

// formatAddress prefers the provider's preformatted address string and
// falls back to joining the structured parts.
func formatAddress(addr *AddressObj) string {
	if addr == nil {
		return ""
	}
	if addr.AddressString != "" {
		return addr.AddressString
	}
	parts := []string{}
	for _, p := range []string{addr.Street1, addr.City, addr.State, addr.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
