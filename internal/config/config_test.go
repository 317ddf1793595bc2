package config

import (
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-travel-backend/internal/provider"
)

// setRequired sets the credentials every successful Load needs.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_MAPS_API_KEY", "google-key")
	t.Setenv("TRIPADVISOR_API_KEY", "ta-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q", cfg.GinMode)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.DBPath != "travel.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.DefaultTopN != 10 || cfg.SearchPool != 50 {
		t.Fatalf("pipeline defaults: n=%d pool=%d", cfg.DefaultTopN, cfg.SearchPool)
	}
	if cfg.Providers.LanguageCode != "en" {
		t.Fatalf("LanguageCode = %q", cfg.Providers.LanguageCode)
	}
	if cfg.Providers.RPS != 5.0 || cfg.Providers.Burst != 1 || cfg.Providers.DetailMaxRetries != 3 {
		t.Fatalf("provider tuning: %+v", cfg.Providers)
	}
	if cfg.ReadTimeout != 15*time.Second || cfg.IdleTimeout != 60*time.Second {
		t.Fatalf("timeouts: read=%v idle=%v", cfg.ReadTimeout, cfg.IdleTimeout)
	}
	if cfg.OTEL.Enabled || cfg.OTEL.ServiceName != "go-travel-backend" {
		t.Fatalf("otel defaults: %+v", cfg.OTEL)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("TRIPADVISOR_API_KEY", "ta-key")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "GOOGLE_MAPS_API_KEY") {
		t.Fatalf("expected google key error, got %v", err)
	}

	t.Setenv("GOOGLE_MAPS_API_KEY", "google-key")
	t.Setenv("TRIPADVISOR_API_KEY", "")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "TRIPADVISOR_API_KEY") {
		t.Fatalf("expected tripadvisor key error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "DEBUG")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("API_BASE_PATH", "v2/")
	t.Setenv("DEFAULT_TOP_N", "5")
	t.Setenv("SEARCH_POOL", "25")
	t.Setenv("PROVIDER_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("READ_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Port != "9090" || cfg.GinMode != "debug" {
		t.Fatalf("server overrides: %+v", cfg)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel normalization: %q", cfg.LogLevel)
	}
	if cfg.APIBasePath != "/v2" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.DefaultTopN != 5 || cfg.SearchPool != 25 || cfg.Providers.RPS != 2.5 {
		t.Fatalf("pipeline overrides: %+v", cfg)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORS origins: %+v", cfg.CORS.AllowedOrigins)
	}
	if cfg.ReadTimeout != 3*time.Second {
		t.Fatalf("ReadTimeout = %v", cfg.ReadTimeout)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"zero top n", "DEFAULT_TOP_N", "0"},
		{"zero pool", "SEARCH_POOL", "0"},
		{"zero provider rps", "PROVIDER_RPS", "0"},
		{"zero provider burst", "PROVIDER_BURST", "0"},
		{"negative detail retries", "DETAIL_MAX_RETRIES", "-1"},
		{"negative rate rps", "RATE_RPS", "-1"},
		{"zero rate burst", "RATE_BURST", "0"},
		{"sample ratio too high", "OTEL_TRACES_SAMPLER_ARG", "1.5"},
		{"zero read timeout", "READ_TIMEOUT", "0s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestLoad_UnknownGinModeFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("GIN_MODE", "turbo")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q", cfg.GinMode)
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")
	t.Setenv("TRIPADVISOR_API_KEY", "")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = MustLoad()
}

func TestLoad_DetailRetriesFeedRetryPolicy(t *testing.T) {
	setRequired(t)
	t.Setenv("DETAIL_MAX_RETRIES", "2")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Same wiring as the entrypoints: the env knob becomes the retry cap.
	policy := provider.RetryPolicy{
		MaxRetries:      uint64(cfg.Providers.DetailMaxRetries),
		InitialInterval: time.Second,
	}
	if policy.MaxRetries != 2 {
		t.Fatalf("MaxRetries = %d", policy.MaxRetries)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":         "/",
		"/":        "/",
		"api":      "/api",
		"/api/":    "/api",
		" /api/v1": "/api/v1",
		"/api//":   "/api",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("FLAG", "Yes")
	if !getbool("FLAG", false) {
		t.Fatalf("expected true for 'Yes'")
	}
	t.Setenv("FLAG", "off")
	if getbool("FLAG", true) {
		t.Fatalf("expected false for 'off'")
	}
	t.Setenv("FLAG", "maybe")
	if !getbool("FLAG", true) {
		t.Fatalf("expected default for unparsable value")
	}
}

func TestSplitCSV(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Fatalf("expected nil for empty, got %+v", got)
	}
	got := splitCSV(" a ,, b,c ")
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("unexpected: %+v", got)
	}
}
