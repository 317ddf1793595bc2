// Package services – pipeline metrics
//
// Prometheus collectors for the search pipeline. Labels stay coarse
// (provider name, call kind) so cardinality is bounded by the small,
// fixed set of providers and operations.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// providerCalls counts outbound provider calls by provider and
	// operation (search, resolve, details).
	providerCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_provider_calls_total",
			Help: "Total number of outbound provider API calls.",
		},
		[]string{"provider", "op"},
	)

	// snapshotLookups counts snapshot reads by outcome (hit, miss).
	snapshotLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_snapshot_lookups_total",
			Help: "Total number of city snapshot lookups.",
		},
		[]string{"outcome"},
	)

	// itemResolutions counts per-item resolutions by outcome (cache, api).
	itemResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_item_resolutions_total",
			Help: "Total number of item summary resolutions.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(providerCalls, snapshotLookups, itemResolutions)
}
