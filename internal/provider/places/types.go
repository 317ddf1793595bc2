// Package places implements the Google Places (New) API adapter. It
// exposes candidate listing and detail fetching in provider-native shapes
// plus the normalization into the unified summary schema.
package places

// LocalizedText is the Places API wrapper around display strings.
type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

// AccessibilityOptions carries the subset of accessibility fields the
// adapter requests.
type AccessibilityOptions struct {
	WheelchairAccessibleEntrance *bool `json:"wheelchairAccessibleEntrance,omitempty"`
}

// OpeningHours carries the human-readable weekly schedule.
type OpeningHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions,omitempty"`
}

// LatLng is a WGS-84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place is the provider-native record returned by both text search and
// place details. Search responses populate only the candidate fields
// named in the search field mask; details add accessibility, hours,
// contact, and location.
type Place struct {
	ID                   string                `json:"id"`
	DisplayName          *LocalizedText        `json:"displayName,omitempty"`
	FormattedAddress     *string               `json:"formattedAddress,omitempty"`
	Rating               *float64              `json:"rating,omitempty"`
	UserRatingCount      *int                  `json:"userRatingCount,omitempty"`
	PrimaryType          *string               `json:"primaryType,omitempty"`
	Types                []string              `json:"types,omitempty"`
	AccessibilityOptions *AccessibilityOptions `json:"accessibilityOptions,omitempty"`
	RegularOpeningHours  *OpeningHours         `json:"regularOpeningHours,omitempty"`
	WebsiteURI           *string               `json:"websiteUri,omitempty"`
	NationalPhoneNumber  *string               `json:"nationalPhoneNumber,omitempty"`
	Location             *LatLng               `json:"location,omitempty"`
}

// PopularitySignal returns the review count used for ranking, zero when
// the provider omitted it.
func (p Place) PopularitySignal() int {
	if p.UserRatingCount == nil {
		return 0
	}
	return *p.UserRatingCount
}

// HasType reports whether the place carries the given type tag.
func (p Place) HasType(t string) bool {
	for _, v := range p.Types {
		if v == t {
			return true
		}
	}
	return false
}

// searchTextRequest is the body for the :searchText endpoint.
type searchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	LanguageCode   string `json:"languageCode,omitempty"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
}

// searchTextResponse wraps the candidate list.
type searchTextResponse struct {
	Places []Place `json:"places"`
}
