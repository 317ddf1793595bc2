// Package handlers defines HTTP-layer error codes used across all API
// endpoints. Codes are lowercase snake_case and stable: clients branch
// on them programmatically, so renaming one is a breaking change.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeUnknownSource    = "unknown_source"
	ErrCodeUnsupportedQuery = "unsupported_query"
	ErrCodeCityUnresolvable = "city_unresolvable"
	ErrCodeUpstreamFailed   = "upstream_failed"
	ErrCodeListFailed       = "list_failed"
)
