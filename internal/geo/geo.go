// Package geo provides straight-line distance helpers over unified
// summaries: great-circle distance and "closest two" neighbor selection
// used by the nearby surface.
package geo

import (
	"errors"
	"math"
	"sort"

	"github.com/tbourn/go-travel-backend/internal/domain"
)

// ErrNoCoordinates is returned when the start item lacks lat/lng.
var ErrNoCoordinates = errors.New("start item has no coordinates")

const earthRadiusKm = 6371.0

// HaversineKm computes the great-circle distance in kilometers between
// two WGS-84 coordinates.
func HaversineKm(aLat, aLng, bLat, bLng float64) float64 {
	lat1 := aLat * math.Pi / 180
	lon1 := aLng * math.Pi / 180
	lat2 := bLat * math.Pi / 180
	lon2 := bLng * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Neighbor pairs a summary with its distance from the start item.
type Neighbor struct {
	Summary    *domain.Summary
	DistanceKm float64
}

// ClosestTwo returns the two candidates nearest to start by straight-line
// distance. Candidates without coordinates are ignored; fewer than two
// valid candidates yield a shorter list. The start item must carry
// coordinates or ErrNoCoordinates is returned.
func ClosestTwo(start *domain.Summary, others []*domain.Summary) ([]Neighbor, error) {
	if start == nil || start.Lat == nil || start.Lng == nil {
		return nil, ErrNoCoordinates
	}

	neighbors := []Neighbor{}
	for _, o := range others {
		if o == nil || o.Lat == nil || o.Lng == nil {
			continue
		}
		neighbors = append(neighbors, Neighbor{
			Summary:    o,
			DistanceKm: HaversineKm(*start.Lat, *start.Lng, *o.Lat, *o.Lng),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].DistanceKm < neighbors[j].DistanceKm
	})
	if len(neighbors) > 2 {
		neighbors = neighbors[:2]
	}
	return neighbors, nil
}
