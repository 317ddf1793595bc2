package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

func coord(lat, lng float64) (*float64, *float64) { return &lat, &lng }

func summaryAt(id string, lat, lng float64) *domain.Summary {
	s := &domain.Summary{Source: domain.SourceGoogle, ItemID: id}
	s.Lat, s.Lng = coord(lat, lng)
	return s
}

func TestHaversineKm(t *testing.T) {
	// Louvre to Eiffel Tower is roughly 3.2 km.
	d := HaversineKm(48.8606, 2.3376, 48.8584, 2.2945)
	if math.Abs(d-3.2) > 0.2 {
		t.Fatalf("unexpected distance %f", d)
	}
	if HaversineKm(48.86, 2.33, 48.86, 2.33) != 0 {
		t.Fatalf("identical points must be zero distance")
	}
}

func TestClosestTwo(t *testing.T) {
	start := summaryAt("start", 48.8606, 2.3376)
	others := []*domain.Summary{
		summaryAt("far", 48.9, 2.5),
		summaryAt("near", 48.861, 2.338),
		{Source: domain.SourceGoogle, ItemID: "no-coords"},
		summaryAt("mid", 48.87, 2.35),
	}

	got, err := ClosestTwo(start, others)
	if err != nil {
		t.Fatalf("ClosestTwo: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(got))
	}
	if got[0].Summary.ItemID != "near" || got[1].Summary.ItemID != "mid" {
		t.Fatalf("unexpected order: %s, %s", got[0].Summary.ItemID, got[1].Summary.ItemID)
	}
	if got[0].DistanceKm >= got[1].DistanceKm {
		t.Fatalf("distances out of order: %+v", got)
	}
}

func TestClosestTwo_FewerThanTwoCandidates(t *testing.T) {
	start := summaryAt("start", 48.86, 2.33)
	got, err := ClosestTwo(start, []*domain.Summary{summaryAt("only", 48.87, 2.34)})
	if err != nil {
		t.Fatalf("ClosestTwo: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 neighbor, got %d", len(got))
	}
}

func TestClosestTwo_StartWithoutCoordinates(t *testing.T) {
	_, err := ClosestTwo(&domain.Summary{ItemID: "start"}, nil)
	if !errors.Is(err, ErrNoCoordinates) {
		t.Fatalf("expected ErrNoCoordinates, got %v", err)
	}
	_, err = ClosestTwo(nil, nil)
	if !errors.Is(err, ErrNoCoordinates) {
		t.Fatalf("expected ErrNoCoordinates for nil start, got %v", err)
	}
}
