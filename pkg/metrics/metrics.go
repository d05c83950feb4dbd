package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Tracking actions by result.
	TrackingActionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_action_count",
			Help: "Total number of tracking actions processed",
		},
		[]string{"action", "result"}, // result: applied, skipped, error
	)

	// Errors absorbed by the best-effort tracking endpoint.
	SwallowedErrorCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swallowed_error_count",
			Help: "Total number of errors captured and suppressed",
		},
		[]string{"op"},
	)

	// Read-path cache effectiveness.
	EmailCacheHitCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_cache_hit_count",
			Help: "Email lookup cache hits and misses",
		},
		[]string{"result"}, // result: hit, miss
	)
)
