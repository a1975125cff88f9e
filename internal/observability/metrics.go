package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ModerationDecisions counts resolved blog requests by kind and outcome.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aurum_moderation_decisions_total",
		Help: "Total number of resolved moderation requests by kind and outcome",
	}, []string{"kind", "outcome"})

	// BlogSubmissions counts moderation submissions by kind.
	BlogSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aurum_blog_submissions_total",
		Help: "Total number of blog change submissions entering the moderation queue",
	}, []string{"kind"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aurum_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aurum_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
