// Package services implements the business logic of the travel backend:
// the snapshot-and-cache search pipeline, the cached-snapshot listing,
// and the nearby-neighbor lookup. This file centralizes service-level
// error values so handlers can map them to HTTP results consistently.
package services

import "errors"

var (
	// ErrCityRequired is returned when a search request carries a blank
	// city.
	ErrCityRequired = errors.New("city is required")

	// ErrUnknownSource is returned for a source outside the supported
	// set. The lookup fails loudly instead of yielding a silent empty
	// result.
	ErrUnknownSource = errors.New("unknown source")

	// ErrUnsupportedQuery is returned for a (source, item type)
	// combination the pipeline cannot serve, such as Google activities.
	ErrUnsupportedQuery = errors.New("unsupported source and item type combination")

	// ErrItemNotInSnapshot is returned by the nearby lookup when the
	// start item id is not part of the city's snapshot.
	ErrItemNotInSnapshot = errors.New("item not in city snapshot")
)
