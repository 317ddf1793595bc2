package tripadvisor

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

func TestSummarize_CoercesStringNumerics(t *testing.T) {
	raw := `{
		"location_id": "188151",
		"name": "Eiffel Tower",
		"rating": "4.5",
		"num_reviews": "140000",
		"latitude": "48.85837",
		"longitude": "2.294481",
		"web_url": "https://www.tripadvisor.com/Attraction_Review",
		"address_obj": {"address_string": "Champ de Mars, Paris"},
		"category": {"name": "attraction"},
		"groups": [{"name": "Sights & Landmarks"}, {"name": ""}]
	}`
	var loc Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	s := Summarize(&loc)
	if s.Source != domain.SourceTripAdvisor || s.ItemID != "188151" {
		t.Fatalf("identity mismatch: %+v", s)
	}
	if s.Rating == nil || *s.Rating != 4.5 {
		t.Fatalf("rating not coerced: %+v", s)
	}
	if s.ReviewCount == nil || *s.ReviewCount != 140000 {
		t.Fatalf("review count not coerced: %+v", s)
	}
	if s.Lat == nil || *s.Lat != 48.85837 || s.Lng == nil || *s.Lng != 2.294481 {
		t.Fatalf("coords not coerced: %+v", s)
	}
	if s.Address == nil || *s.Address != "Champ de Mars, Paris" {
		t.Fatalf("address mismatch: %+v", s)
	}
	if s.CategoryPrimary == nil || *s.CategoryPrimary != "attraction" {
		t.Fatalf("category mismatch: %+v", s)
	}
	if !reflect.DeepEqual(s.Types, []string{"Sights & Landmarks"}) {
		t.Fatalf("groups mismatch: %+v", s.Types)
	}
	if s.Website == nil || *s.Website != "https://www.tripadvisor.com/Attraction_Review" {
		t.Fatalf("website mismatch: %+v", s)
	}
	// The Content API never yields these fields.
	if s.Wheelchair != nil || s.Hours != nil || s.Phone != nil {
		t.Fatalf("unexpected populated fields: %+v", s)
	}
}

func TestSummarize_MalformedNumericsStayNil(t *testing.T) {
	s := Summarize(&Location{
		LocationID: "1",
		Rating:     "not-a-number",
		NumReviews: "",
		Latitude:   "NaNish",
	})
	if s.Rating != nil || s.ReviewCount != nil || s.Lat != nil || s.Lng != nil {
		t.Fatalf("malformed numerics must stay nil: %+v", s)
	}
}

func TestSummarize_AddressFallbackJoin(t *testing.T) {
	s := Summarize(&Location{
		LocationID: "1",
		AddressObj: &AddressObj{Street1: "1 Main St", City: "Paris", Country: "France"},
	})
	if s.Address == nil || *s.Address != "1 Main St, Paris, France" {
		t.Fatalf("fallback join mismatch: %+v", s.Address)
	}

	s = Summarize(&Location{LocationID: "2", AddressObj: &AddressObj{}})
	if s.Address != nil {
		t.Fatalf("empty address must stay nil: %+v", s.Address)
	}
}

func TestReviewCountOf(t *testing.T) {
	if got := ReviewCountOf(Location{NumReviews: "123"}); got != 123 {
		t.Fatalf("unexpected count %d", got)
	}
	if got := ReviewCountOf(Location{NumReviews: "junk"}); got != 0 {
		t.Fatalf("malformed count must rank as zero, got %d", got)
	}
	if got := ReviewCountOf(Location{}); got != 0 {
		t.Fatalf("absent count must rank as zero, got %d", got)
	}
}

func TestMatchesGroups(t *testing.T) {
	sights := &domain.Summary{Types: []string{"Sights & Landmarks", "Tours"}}
	bare := &domain.Summary{Types: []string{}}

	cases := []struct {
		name  string
		s     *domain.Summary
		allow []string
		deny  []string
		want  bool
	}{
		{"no policy keeps everything", sights, nil, nil, true},
		{"deny wins on overlap", sights, []string{"tours"}, []string{"TOURS"}, false},
		{"allow requires overlap", sights, []string{"Museums"}, nil, false},
		{"allow matches case-insensitively", sights, []string{" sights & landmarks "}, nil, true},
		{"deny without overlap keeps", sights, nil, []string{"Nightlife"}, true},
		{"no groups fails allow", bare, []string{"Tours"}, nil, false},
		{"no groups passes deny", bare, nil, []string{"Tours"}, true},
	}
	for _, tc := range cases {
		if got := MatchesGroups(tc.s, tc.allow, tc.deny); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
