// Package tripadvisor implements the TripAdvisor Content API adapter:
// locality resolution, nearby candidate search, detail fetching, the
// normalization into the unified summary schema, and the group-based
// keep/reject filter.
//
// The Content API returns numeric fields (rating, review counts,
// coordinates) as strings; normalization coerces them. Groups are only
// reliably present in detail responses, so filtering happens after the
// detail fetch, never on search candidates.
package tripadvisor

// Locality is a resolved city geo entry.
type Locality struct {
	LocationID string
	Name       string
	// LatLong is "lat,lng" when the geo entry carried coordinates,
	// empty otherwise. Searches fall back to the name query when empty.
	LatLong string
}

// NamedEntity is the {name} shape used by categories and groups.
type NamedEntity struct {
	Name string `json:"name"`
}

// AddressObj is the structured address block.
type AddressObj struct {
	Street1       string `json:"street1,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	Country       string `json:"country,omitempty"`
	AddressString string `json:"address_string,omitempty"`
}

// Location is a search or details record. Numeric fields arrive as
// strings and may be absent or malformed.
type Location struct {
	LocationID string        `json:"location_id"`
	Name       string        `json:"name,omitempty"`
	Rating     string        `json:"rating,omitempty"`
	NumReviews string        `json:"num_reviews,omitempty"`
	Latitude   string        `json:"latitude,omitempty"`
	Longitude  string        `json:"longitude,omitempty"`
	WebURL     string        `json:"web_url,omitempty"`
	AddressObj *AddressObj   `json:"address_obj,omitempty"`
	Category   *NamedEntity  `json:"category,omitempty"`
	Groups     []NamedEntity `json:"groups,omitempty"`
}

// dataEnvelope wraps every list response from the Content API.
type dataEnvelope struct {
	Data []Location `json:"data"`
}
