// Package services – SearchService
//
// This file implements the snapshot-and-cache search pipeline. A request
// for (city, source, item type) first looks for a persisted Top-N
// snapshot; when absent, candidates are listed from the provider, ranked
// by review count, filtered, and the resulting ordered id list is saved
// permanently, including the empty outcome. Every id is then resolved
// through the item cache with a live detail fetch on miss. Results carry
// request-scoped provenance tags for both resolution levels.
//
// Error propagation is strict: a failing provider call or store write
// for any single item fails the whole request, never a silently shorter
// list.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-travel-backend/internal/domain"
	"github.com/tbourn/go-travel-backend/internal/provider/places"
	"github.com/tbourn/go-travel-backend/internal/provider/tripadvisor"
	"github.com/tbourn/go-travel-backend/internal/repo"
)

// touristAttractionType is the Places type tag a Google candidate must
// carry to enter a snapshot.
const touristAttractionType = "tourist_attraction"

const (
	// DefaultTopN is the snapshot size when the request does not pick one.
	DefaultTopN = 10
	// DefaultSearchPool bounds how many candidates are considered before
	// ranking and truncation.
	DefaultSearchPool = 50
)

// PlacesProvider is the Google Places contract required by the pipeline.
type PlacesProvider interface {
	// SearchText lists candidate places for a free-text query.
	SearchText(ctx context.Context, query string, max int) ([]places.Place, error)

	// PlaceDetails fetches the full record for one place id.
	PlaceDetails(ctx context.Context, placeID string) (*places.Place, error)
}

// TripAdvisorProvider is the Content API contract required by the
// pipeline.
type TripAdvisorProvider interface {
	// ResolveLocality resolves a city string into a geo anchor.
	ResolveLocality(ctx context.Context, city string) (*tripadvisor.Locality, error)

	// SearchNearby lists attraction candidates around a locality.
	SearchNearby(ctx context.Context, loc *tripadvisor.Locality) ([]tripadvisor.Location, error)

	// LocationDetails fetches the full record for one location id.
	LocationDetails(ctx context.Context, locationID string) (*tripadvisor.Location, error)
}

// SearchService runs the snapshot-and-cache pipeline over the store and
// the two provider adapters.
type SearchService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Places is the Google Places adapter.
	Places PlacesProvider
	// TripAdvisor is the Content API adapter.
	TripAdvisor TripAdvisorProvider

	// TopN is the default snapshot size.
	TopN int
	// SearchPool is the default candidate pool bound.
	SearchPool int
}

// NewSearchService constructs a SearchService with the default snapshot
// size and pool bound.
func NewSearchService(db *gorm.DB, p PlacesProvider, ta TripAdvisorProvider) *SearchService {
	return &SearchService{
		DB:          db,
		Places:      p,
		TripAdvisor: ta,
		TopN:        DefaultTopN,
		SearchPool:  DefaultSearchPool,
	}
}

// SearchRequest carries one pipeline invocation. AllowTags and DenyTags
// apply only to the TripAdvisor group filter.
type SearchRequest struct {
	City     string
	Source   domain.Source
	ItemType domain.ItemType
	// N caps the result list; zero or negative falls back to TopN.
	N int
	// Pool bounds the candidate pool; zero or negative falls back to
	// SearchPool.
	Pool      int
	AllowTags []string
	DenyTags  []string
}

var tracer = otel.Tracer("github.com/tbourn/go-travel-backend/internal/services")

// Search resolves the Top-N items for a city. The snapshot is computed
// at most once per (city, source, item type); afterwards every call is
// served from the store, including the permanently cached empty outcome.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]domain.Result, error) {
	req.City = strings.TrimSpace(req.City)
	if req.City == "" {
		return nil, ErrCityRequired
	}
	if !req.Source.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, req.Source)
	}
	if !req.ItemType.Valid() {
		return nil, fmt.Errorf("%w: %s %q", ErrUnsupportedQuery, req.Source, req.ItemType)
	}
	if req.Source == domain.SourceGoogle && req.ItemType != domain.ItemTypeAttraction {
		return nil, fmt.Errorf("%w: google serves attractions only", ErrUnsupportedQuery)
	}
	if req.N <= 0 {
		req.N = s.TopN
	}
	if req.Pool <= 0 {
		req.Pool = s.SearchPool
	}

	ctx, span := tracer.Start(ctx, "SearchService.Search", trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(
		attribute.String("travel.city", domain.NormalizeCity(req.City)),
		attribute.String("travel.source", string(req.Source)),
		attribute.String("travel.item_type", string(req.ItemType)),
	)
	defer span.End()

	ids, err := repo.GetSnapshot(ctx, s.DB, req.City, req.Source, req.ItemType)
	citySource := domain.CityFromSnapshot
	switch {
	case err == nil:
		snapshotLookups.WithLabelValues("hit").Inc()
	case errors.Is(err, repo.ErrNotFound):
		snapshotLookups.WithLabelValues("miss").Inc()
		citySource = domain.CityComputed
		if ids, err = s.computeSnapshot(ctx, req); err != nil {
			return nil, err
		}
		if err := repo.SaveSnapshot(ctx, s.DB, req.City, req.Source, req.ItemType, ids); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if len(ids) > req.N {
		ids = ids[:req.N]
	}
	return s.resolveItems(ctx, req.Source, ids, citySource)
}

// computeSnapshot builds the ordered id list for a missing snapshot. The
// list may be empty; the caller persists it either way.
func (s *SearchService) computeSnapshot(ctx context.Context, req SearchRequest) ([]string, error) {
	ctx, span := tracer.Start(ctx, "SearchService.computeSnapshot")
	defer span.End()

	switch req.Source {
	case domain.SourceGoogle:
		return s.computeGoogleSnapshot(ctx, req)
	case domain.SourceTripAdvisor:
		return s.computeTripAdvisorSnapshot(ctx, req)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, req.Source)
}

// computeGoogleSnapshot lists text-search candidates, keeps only
// tourist attractions, ranks by review count descending with provider
// order breaking ties, and truncates to N. Details are fetched lazily
// during resolution, not here.
func (s *SearchService) computeGoogleSnapshot(ctx context.Context, req SearchRequest) ([]string, error) {
	providerCalls.WithLabelValues("google", "search").Inc()
	candidates, err := s.Places.SearchText(ctx, "tourist attractions in "+req.City, req.Pool)
	if err != nil {
		return nil, err
	}

	filtered := make([]places.Place, 0, len(candidates))
	for _, c := range candidates {
		if c.HasType(touristAttractionType) {
			filtered = append(filtered, c)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PopularitySignal() > filtered[j].PopularitySignal()
	})

	ids := []string{}
	for _, c := range filtered {
		if len(ids) >= req.N {
			break
		}
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// computeTripAdvisorSnapshot resolves the city to a geo anchor, ranks
// nearby candidates by review count, then walks the ranked pool fetching
// details. Groups are only reliable in details, so the allow/deny filter
// runs here, before the snapshot is saved. Accepted summaries are
// upserted immediately so resolution usually hits cache.
func (s *SearchService) computeTripAdvisorSnapshot(ctx context.Context, req SearchRequest) ([]string, error) {
	providerCalls.WithLabelValues("tripadvisor", "resolve").Inc()
	loc, err := s.TripAdvisor.ResolveLocality(ctx, req.City)
	if err != nil {
		return nil, err
	}

	providerCalls.WithLabelValues("tripadvisor", "search").Inc()
	candidates, err := s.TripAdvisor.SearchNearby(ctx, loc)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return tripadvisor.ReviewCountOf(candidates[i]) > tripadvisor.ReviewCountOf(candidates[j])
	})
	if len(candidates) > req.Pool {
		candidates = candidates[:req.Pool]
	}

	accepted := []string{}
	for _, c := range candidates {
		if c.LocationID == "" {
			continue
		}

		providerCalls.WithLabelValues("tripadvisor", "details").Inc()
		detail, err := s.TripAdvisor.LocationDetails(ctx, c.LocationID)
		if err != nil {
			return nil, err
		}
		summary := tripadvisor.Summarize(detail)
		if !tripadvisor.MatchesGroups(summary, req.AllowTags, req.DenyTags) {
			continue
		}

		if err := repo.UpsertItem(ctx, s.DB, summary); err != nil {
			return nil, err
		}
		accepted = append(accepted, c.LocationID)
		if len(accepted) >= req.N {
			break
		}
	}
	return accepted, nil
}

// resolveItems turns an ordered id list into summaries, reading through
// the item cache and falling back to one detail fetch per miss. Snapshot
// order is preserved; it encodes the ranking made at computation time.
func (s *SearchService) resolveItems(ctx context.Context, source domain.Source, ids []string, citySource string) ([]domain.Result, error) {
	ctx, span := tracer.Start(ctx, "SearchService.resolveItems")
	span.SetAttributes(attribute.Int("travel.item_count", len(ids)))
	defer span.End()

	results := make([]domain.Result, 0, len(ids))
	for _, id := range ids {
		summary, err := repo.GetItem(ctx, s.DB, source, id)
		itemSource := domain.ItemFromCache
		switch {
		case err == nil:
			itemResolutions.WithLabelValues("cache").Inc()
		case errors.Is(err, repo.ErrNotFound):
			itemResolutions.WithLabelValues("api").Inc()
			itemSource = domain.ItemFromAPI
			if summary, err = s.fetchSummary(ctx, source, id); err != nil {
				return nil, err
			}
			if err := repo.UpsertItem(ctx, s.DB, summary); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}

		results = append(results, domain.Result{
			Summary:    summary,
			CitySource: citySource,
			ItemSource: itemSource,
		})
	}
	return results, nil
}

// fetchSummary performs one live detail fetch and normalization.
func (s *SearchService) fetchSummary(ctx context.Context, source domain.Source, id string) (*domain.Summary, error) {
	switch source {
	case domain.SourceGoogle:
		providerCalls.WithLabelValues("google", "details").Inc()
		p, err := s.Places.PlaceDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		return places.Summarize(p), nil
	case domain.SourceTripAdvisor:
		providerCalls.WithLabelValues("tripadvisor", "details").Inc()
		loc, err := s.TripAdvisor.LocationDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		return tripadvisor.Summarize(loc), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
}

// ListCached returns a page of stored snapshots plus the total count.
// It applies defaults for invalid page/pageSize.
func (s *SearchService) ListCached(ctx context.Context, page, pageSize int) ([]domain.CitySnapshot, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountSnapshots(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.CitySnapshot{}, 0, nil
	}

	items, err := repo.ListSnapshotsPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}
