// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// UpstreamRequestDuration records outbound third-party API latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devhub_upstream_request_duration_seconds",
		Help:    "Latency of outbound third-party API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"upstream", "status"})

	// AuthFailures counts rejected requests by reason (missing or invalid token).
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_auth_failures_total",
		Help: "Total number of rejected authentications by reason",
	}, []string{"reason"})
)
