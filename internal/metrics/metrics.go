// Package metrics exposes Prometheus collectors for recipe matching.
//
// Usage:
//
//	start := time.Now()
//	RecordMatchRequest(OutcomeOK, time.Since(start))
//	RecordCacheEvent(CacheHit)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Match request outcomes
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Cache events
const (
	CacheHit        = "hit"
	CacheMiss       = "miss"
	CacheShared     = "shared"
	CacheError      = "error"
	CacheInvalidate = "invalidate"
)

var (
	// MatchRequestsTotal counts match requests by outcome.
	MatchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_match_requests_total",
			Help: "Total number of recipe match requests",
		},
		[]string{"outcome"},
	)

	// MatchDuration tracks end-to-end match latency, cache hits included.
	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_match_duration_seconds",
			Help:    "Duration of recipe match requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// MatchCacheEventsTotal counts result cache activity.
	MatchCacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_match_cache_events_total",
			Help: "Total number of match result cache events",
		},
		[]string{"event"},
	)

	// MatchResultsTotal observes how many recipes passed the filters.
	MatchResultsTotal = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_match_results_total",
			Help:    "Number of recipes matching a request before pagination",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// RecordMatchRequest records one finished match request
func RecordMatchRequest(outcome string, d time.Duration) {
	MatchRequestsTotal.WithLabelValues(outcome).Inc()
	MatchDuration.Observe(d.Seconds())
}

func RecordCacheEvent(event string) {
	MatchCacheEventsTotal.WithLabelValues(event).Inc()
}

func RecordResultCount(total int) {
	MatchResultsTotal.Observe(float64(total))
}
