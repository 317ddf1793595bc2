package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tbourn/go-travel-backend/internal/provider"
)

// DefaultBaseURL is the production Places (New) API endpoint.
const DefaultBaseURL = "https://places.googleapis.com"

const defaultTimeout = 30 * time.Second

// searchFieldMask names the candidate fields requested from text search.
// Details add accessibility, hours, contact, and location on top.
var searchFieldMask = strings.Join([]string{
	"places.id",
	"places.displayName",
	"places.formattedAddress",
	"places.rating",
	"places.userRatingCount",
	"places.primaryType",
	"places.types",
}, ",")

var detailsFieldMask = strings.Join([]string{
	"id",
	"displayName",
	"formattedAddress",
	"rating",
	"userRatingCount",
	"primaryType",
	"types",
	"accessibilityOptions",
	"regularOpeningHours",
	"websiteUri",
	"nationalPhoneNumber",
	"location",
}, ",")

// Client is the HTTP client for the Places (New) API. Requests are paced
// by a token bucket limiter and detail fetches retry on 429 per the
// configured policy.
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
	// LanguageCode is the BCP-47 code sent with every request. Defaults
	// to "en".
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

// NewClient creates a Places client with rate limiting and 429 retries.
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

// SearchText returns up to max candidate places for a free-text query,
// in provider order. The candidates carry only the search field mask;
// call PlaceDetails for the full record.
func (c *Client) SearchText(ctx context.Context, query string, max int) ([]Place, error) {
	body, err := json.Marshal(searchTextRequest{
		TextQuery:      query,
		LanguageCode:   c.language,
		MaxResultCount: max,
	})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	var out searchTextResponse
	if err := c.do(ctx, http.MethodPost, "/v1/places:searchText", searchFieldMask, body, &out); err != nil {
		return nil, err
	}
	return out.Places, nil
}

// PlaceDetails fetches the full record for one place id, retrying on 429.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*Place, error) {
	path := "/v1/places/" + placeID + "?languageCode=" + c.language

	var out Place
	err := c.retry.Do(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, detailsFieldMask, nil, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one rate-limited request against the Places API and decodes
// the JSON response into out. A 429 maps to ErrRateLimited so callers can
// retry; other non-200 statuses become StatusError.
func (c *Client) do(ctx context.Context, method, path, fieldMask string, body []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

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
		c.logger.Warn().Str("path", path).Msg("places rate limited")
		return fmt.Errorf("%w: places %s", provider.ErrRateLimited, path)
	case resp.StatusCode != http.StatusOK:
		return &provider.StatusError{Status: resp.StatusCode, Body: provider.Truncate(raw, 200)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
