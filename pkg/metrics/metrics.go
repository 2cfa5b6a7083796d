package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"action", "status"}, // action: register, login; status: success, failed
	)

	EntityCreates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_creates_total",
			Help: "Total number of created entities",
		},
		[]string{"entity"}, // entity: project, task, time_entry, milestone
	)

	SlowQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_queries_total",
			Help: "Total number of queries slower than the configured threshold",
		},
	)
)

// RecordHTTPRequestDuration observes one handled request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementAuthAttempt counts a register/login attempt by outcome.
func IncrementAuthAttempt(action, status string) {
	AuthAttempts.WithLabelValues(action, status).Inc()
}

// IncrementEntityCreate counts a created entity by kind.
func IncrementEntityCreate(entity string) {
	EntityCreates.WithLabelValues(entity).Inc()
}

// IncrementSlowQuery counts a query that crossed the slow threshold.
func IncrementSlowQuery() {
	SlowQueries.Inc()
}
