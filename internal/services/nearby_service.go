// Package services – nearby lookup
//
// Runs the search pipeline for a city (hitting the snapshot and item
// caches on repeat calls) and returns the two results closest to a
// chosen start item by straight-line distance.
package services

import (
	"context"

	"github.com/tbourn/go-travel-backend/internal/domain"
	"github.com/tbourn/go-travel-backend/internal/geo"
)

// NearbyRequest identifies a start item inside a city's Top-N result.
type NearbyRequest struct {
	Search SearchRequest
	// ItemID is the start item; it must be part of the city snapshot.
	ItemID string
}

// NearbyResult pairs the start summary with its closest neighbors.
type NearbyResult struct {
	Start     *domain.Summary
	Neighbors []geo.Neighbor
}

// Nearby resolves the city's Top-N list and returns the two items
// closest to the start item. Returns ErrItemNotInSnapshot when the id is
// not part of the list and geo.ErrNoCoordinates when the start item has
// no stored location.
func (s *SearchService) Nearby(ctx context.Context, req NearbyRequest) (*NearbyResult, error) {
	results, err := s.Search(ctx, req.Search)
	if err != nil {
		return nil, err
	}

	var start *domain.Summary
	others := make([]*domain.Summary, 0, len(results))
	for _, r := range results {
		if r.Summary.ItemID == req.ItemID {
			start = r.Summary
			continue
		}
		others = append(others, r.Summary)
	}
	if start == nil {
		return nil, ErrItemNotInSnapshot
	}

	neighbors, err := geo.ClosestTwo(start, others)
	if err != nil {
		return nil, err
	}
	return &NearbyResult{Start: start, Neighbors: neighbors}, nil
}
