package places

import "github.com/tbourn/go-travel-backend/internal/domain"

// Summarize normalizes a place details record into the unified summary
// schema. Types and Hours default to empty lists; contact, rating, and
// wheelchair fields stay nil when the provider omits them.
func Summarize(p *Place) *domain.Summary {
	s := &domain.Summary{
		Source:          domain.SourceGoogle,
		ItemID:          p.ID,
		Address:         p.FormattedAddress,
		Rating:          p.Rating,
		ReviewCount:     p.UserRatingCount,
		CategoryPrimary: p.PrimaryType,
		Types:           []string{},
		Hours:           []string{},
		Website:         p.WebsiteURI,
		Phone:           p.NationalPhoneNumber,
	}
	if p.DisplayName != nil && p.DisplayName.Text != "" {
		name := p.DisplayName.Text
		s.Name = &name
	}
	if len(p.Types) > 0 {
		s.Types = append(s.Types, p.Types...)
	}
	if p.AccessibilityOptions != nil {
		s.Wheelchair = p.AccessibilityOptions.WheelchairAccessibleEntrance
	}
	if p.RegularOpeningHours != nil && len(p.RegularOpeningHours.WeekdayDescriptions) > 0 {
		s.Hours = append(s.Hours, p.RegularOpeningHours.WeekdayDescriptions...)
	}
	if p.Location != nil {
		lat, lng := p.Location.Latitude, p.Location.Longitude
		s.Lat, s.Lng = &lat, &lng
	}
	return s
}
