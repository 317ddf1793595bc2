package tripadvisor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tbourn/go-travel-backend/internal/provider"
)

// DefaultBaseURL is the production Content API endpoint.
const DefaultBaseURL = "https://api.content.tripadvisor.com"

const defaultTimeout = 30 * time.Second

// Client is the HTTP client for the TripAdvisor Content API. Requests
// are paced by a token bucket limiter and detail fetches retry on 429
// per the configured policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	limiter    *rate.Limiter
	retry      provider.RetryPolicy
	logger     zerolog.Logger
}

// Options tunes a Client beyond the required API key.
type Options struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
	// LanguageCode defaults to "en".
	LanguageCode string
	// RPS and Burst shape the outbound token bucket. Defaults: 5 rps,
	// burst 1.
	RPS   float64
	Burst int
	// Retry bounds the 429 backoff on detail fetches. Zero value means
	// DefaultRetryPolicy.
	Retry provider.RetryPolicy
	// HTTPClient overrides the default 30s-timeout client.
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// NewClient creates a Content API client with rate limiting and 429
// retries.
func NewClient(apiKey string, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.LanguageCode == "" {
		opts.LanguageCode = "en"
	}
	if opts.RPS <= 0 {
		opts.RPS = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Retry == (provider.RetryPolicy{}) {
		opts.Retry = provider.DefaultRetryPolicy()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		httpClient: opts.HTTPClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     apiKey,
		language:   opts.LanguageCode,
		limiter:    rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		retry:      opts.Retry,
		logger:     opts.Logger,
	}
}

// ResolveLocality resolves a city string into a geo entry via
// location/search with category=geos. The first result wins. Returns
// ErrUnresolvable when the provider has no match.
func (c *Client) ResolveLocality(ctx context.Context, city string) (*Locality, error) {
	params := url.Values{}
	params.Set("searchQuery", city)
	params.Set("category", "geos")

	var out dataEnvelope
	if err := c.get(ctx, "/api/v1/location/search", params, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("%w: city %q", provider.ErrUnresolvable, city)
	}

	geo := out.Data[0]
	loc := &Locality{LocationID: geo.LocationID, Name: geo.Name}
	if geo.Latitude != "" && geo.Longitude != "" {
		loc.LatLong = geo.Latitude + "," + geo.Longitude
	}
	return loc, nil
}

// SearchNearby lists attraction candidates around a resolved locality,
// in provider order. Coordinates drive the search when available, the
// locality name otherwise. Candidates do not reliably carry groups;
// fetch details before filtering.
func (c *Client) SearchNearby(ctx context.Context, loc *Locality) ([]Location, error) {
	params := url.Values{}
	params.Set("category", "attractions")
	if loc.LatLong != "" {
		params.Set("latLong", loc.LatLong)
	} else {
		params.Set("searchQuery", loc.Name)
	}

	var out dataEnvelope
	if err := c.get(ctx, "/api/v1/location/search", params, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// LocationDetails fetches the full record for one location id, retrying
// on 429.
func (c *Client) LocationDetails(ctx context.Context, locationID string) (*Location, error) {
	path := "/api/v1/location/" + locationID + "/details"

	var out Location
	err := c.retry.Do(ctx, func() error {
		return c.get(ctx, path, url.Values{}, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs one rate-limited GET against the Content API and decodes
// the JSON response into out. A 429 maps to ErrRateLimited; other
// non-200 statuses become StatusError.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("key", c.apiKey)
	params.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn().Str("path", path).Msg("tripadvisor rate limited")
		return fmt.Errorf("%w: tripadvisor %s", provider.ErrRateLimited, path)
	case resp.StatusCode != http.StatusOK:
		return &provider.StatusError{Status: resp.StatusCode, Body: provider.Truncate(raw, 200)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
