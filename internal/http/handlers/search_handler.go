// Attraction search HTTP handlers.
//
// This file exposes the REST endpoints of the travel backend:
//   - GET /attractions/search   (Top-N for a city, snapshot-and-cache)
//   - GET /attractions/nearby   (closest two items to a start item)
//   - GET /snapshots            (cached city snapshots, paginated)
//
// Handlers are transport-thin: they parse query parameters, call the
// search service, and translate results and errors into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-travel-backend/internal/domain"
	"github.com/tbourn/go-travel-backend/internal/geo"
	"github.com/tbourn/go-travel-backend/internal/provider"
	"github.com/tbourn/go-travel-backend/internal/services"
	"github.com/tbourn/go-travel-backend/internal/utils"
)

// SearchService defines the pipeline operations consumed by HTTP
// handlers. Implementations must honor the provided context.
type SearchService interface {
	// Search resolves the Top-N items for a city.
	Search(ctx context.Context, req services.SearchRequest) ([]domain.Result, error)
	// Nearby returns the two items closest to a start item.
	Nearby(ctx context.Context, req services.NearbyRequest) (*services.NearbyResult, error)
	// ListCached returns a page of stored snapshots and the total count.
	ListCached(ctx context.Context, page, pageSize int) ([]domain.CitySnapshot, int64, error)
}

// Handlers groups the HTTP endpoints of the API.
type Handlers struct {
	svc SearchService
}

// New constructs a Handlers instance bound to the given service.
func New(svc SearchService) *Handlers {
	return &Handlers{svc: svc}
}

//
// DTOs
//

// ResultItem is one search result: the unified summary plus its
// request-scoped provenance tags.
type ResultItem struct {
	domain.Summary
	// CitySource is "snapshot" or "computed".
	CitySource string `json:"city_source" example:"snapshot"`
	// ItemSource is "cache" or "api".
	ItemSource string `json:"item_source" example:"cache"`
}

// SearchResponse wraps an ordered result list.
type SearchResponse struct {
	City     string       `json:"city" example:"Paris"`
	Source   string       `json:"source" example:"google"`
	ItemType string       `json:"item_type" example:"attraction"`
	Count    int          `json:"count" example:"10"`
	Results  []ResultItem `json:"results"`
}

// NeighborItem is one nearby result with its straight-line distance.
type NeighborItem struct {
	domain.Summary
	DistanceKm float64 `json:"distance_km" example:"0.42"`
}

// NearbyResponse wraps the start item and its closest neighbors.
type NearbyResponse struct {
	Start     domain.Summary `json:"start"`
	Neighbors []NeighborItem `json:"neighbors"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// SnapshotsResponse wraps a page of cached city snapshots.
type SnapshotsResponse struct {
	Snapshots  []domain.CitySnapshot `json:"snapshots"`
	Pagination Pagination            `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// searchRequestFrom builds a service request from query parameters.
// Validation of the values themselves is the service's job.
func searchRequestFrom(c *gin.Context) services.SearchRequest {
	itemType := c.DefaultQuery("type", string(domain.ItemTypeAttraction))
	return services.SearchRequest{
		City:      c.Query("city"),
		Source:    domain.Source(c.Query("source")),
		ItemType:  domain.ItemType(itemType),
		N:         utils.AtoiDefault(c.Query("n"), 0),
		Pool:      utils.AtoiDefault(c.Query("pool"), 0),
		AllowTags: utils.SplitCSV(c.Query("allow")),
		DenyTags:  utils.SplitCSV(c.Query("deny")),
	}
}

// failSearch maps pipeline errors onto HTTP statuses and stable codes.
func failSearch(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCityRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrUnknownSource):
		fail(c, http.StatusBadRequest, ErrCodeUnknownSource, err.Error())
	case errors.Is(err, services.ErrUnsupportedQuery):
		fail(c, http.StatusBadRequest, ErrCodeUnsupportedQuery, err.Error())
	case errors.Is(err, services.ErrItemNotInSnapshot):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, geo.ErrNoCoordinates):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, provider.ErrUnresolvable):
		fail(c, http.StatusNotFound, ErrCodeCityUnresolvable, err.Error())
	case errors.Is(err, provider.ErrRetriesExhausted), errors.Is(err, provider.ErrRateLimited):
		fail(c, http.StatusTooManyRequests, ErrCodeRateLimited, "upstream provider rate limited")
	default:
		var se *provider.StatusError
		if errors.As(err, &se) {
			fail(c, http.StatusBadGateway, ErrCodeUpstreamFailed, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// Handlers
//

// Search godoc
// @ID          searchAttractions
// @Summary     Top-N attractions for a city
// @Description Returns the city's Top-N items from the given source. The first call computes and persists a snapshot; later calls serve it from the store.
// @Tags        Attractions
// @Produce     json
//
// @Param       city    query  string  true   "City name"                      example(Paris)
// @Param       source  query  string  true   "Data source"                    Enums(google, tripadvisor)
// @Param       type    query  string  false  "Item type"                      Enums(attraction, activity) default(attraction)
// @Param       n       query  int     false  "Result count"                   minimum(1) default(10)
// @Param       pool    query  int     false  "Candidate pool bound"           minimum(1) default(50)
// @Param       allow   query  string  false  "Comma-separated allow tags (tripadvisor only)"
// @Param       deny    query  string  false  "Comma-separated deny tags (tripadvisor only)"
//
// @Success     200  {object}  handlers.SearchResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "City unresolvable"
// @Failure     429  {object}  handlers.ErrorResponse  "Upstream rate limited"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream failure"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /attractions/search [get]
func (h *Handlers) Search(c *gin.Context) {
	req := searchRequestFrom(c)

	results, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		failSearch(c, err)
		return
	}

	items := make([]ResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, ResultItem{
			Summary:    *r.Summary,
			CitySource: r.CitySource,
			ItemSource: r.ItemSource,
		})
	}
	ok(c, http.StatusOK, SearchResponse{
		City:     req.City,
		Source:   string(req.Source),
		ItemType: string(req.ItemType),
		Count:    len(items),
		Results:  items,
	})
}

// Nearby godoc
// @ID          nearbyAttractions
// @Summary     Closest two items to a start item
// @Description Resolves the city's Top-N list and returns the two items closest to the given item id by straight-line distance.
// @Tags        Attractions
// @Produce     json
//
// @Param       city     query  string  true   "City name"          example(Paris)
// @Param       source   query  string  true   "Data source"        Enums(google, tripadvisor)
// @Param       type     query  string  false  "Item type"          Enums(attraction, activity) default(attraction)
// @Param       item_id  query  string  true   "Start item id"
//
// @Success     200  {object}  handlers.NearbyResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Item not in snapshot"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /attractions/nearby [get]
func (h *Handlers) Nearby(c *gin.Context) {
	itemID := c.Query("item_id")
	if itemID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "item_id is required")
		return
	}

	res, err := h.svc.Nearby(c.Request.Context(), services.NearbyRequest{
		Search: searchRequestFrom(c),
		ItemID: itemID,
	})
	if err != nil {
		failSearch(c, err)
		return
	}

	neighbors := make([]NeighborItem, 0, len(res.Neighbors))
	for _, n := range res.Neighbors {
		neighbors = append(neighbors, NeighborItem{Summary: *n.Summary, DistanceKm: n.DistanceKm})
	}
	ok(c, http.StatusOK, NearbyResponse{Start: *res.Start, Neighbors: neighbors})
}

// ListSnapshots godoc
// @ID          listSnapshots
// @Summary     List cached city snapshots (paginated)
// @Tags        Snapshots
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.SnapshotsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /snapshots [get]
func (h *Handlers) ListSnapshots(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.svc.ListCached(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, SnapshotsResponse{
		Snapshots: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}
