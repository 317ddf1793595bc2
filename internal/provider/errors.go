// Package provider holds the pieces shared by the upstream travel-data
// adapters: the error taxonomy and the bounded retry policy applied to
// rate-limited detail fetches.
//
// Taxonomy:
//   - ErrRateLimited: transient 429 from a provider; retried inside the
//     adapter with exponential backoff.
//   - ErrRetriesExhausted: the retry budget ran out; terminal for that
//     call. Wraps ErrRateLimited so errors.Is matches both.
//   - ErrUnresolvable: the provider returned no match for a locality or
//     item; surfaced immediately, never retried.
//   - StatusError: any other non-success response; surfaced immediately.
package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited marks an upstream 429 response.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrRetriesExhausted marks a rate-limited call whose backoff budget
	// ran out.
	ErrRetriesExhausted = errors.New("upstream retries exhausted")

	// ErrUnresolvable marks a locality or item the provider cannot resolve.
	ErrUnresolvable = errors.New("upstream could not resolve query")
)

// StatusError is any other non-success provider response.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
}

// Truncate returns a truncated string representation for error messages.
func Truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
