// Package observability registers the service's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pickandget", Name: "match_requests_total",
		Help: "Total rider-matching requests served",
	})
	MatchCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pickandget", Name: "match_candidates",
		Help:    "Candidates returned per matching request",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})
	PickupsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pickandget", Name: "pickups_created_total",
		Help: "Total pickups created and assigned",
	})
	PickupTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pickandget", Name: "pickup_transitions_total",
		Help: "Pickup status transitions by target status",
	}, []string{"to"})
	LocationSweepRemovals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pickandget", Name: "location_sweep_removals_total",
		Help: "Stale live-location entries removed by the sweeper",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pickandget", Name: "http_requests_total",
		Help: "Total HTTP requests handled",
	}, []string{"method", "path", "status"})
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pickandget", Name: "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
