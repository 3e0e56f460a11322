package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/searchgate/internal/db"
)

// Engine and activity Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_requests_total",
			Help:      "Total number of search engine commands",
		},
		[]string{"op", "status"}, // status: ok, error, unavailable
	)

	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine command duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
		[]string{"op"},
	)

	ActivityEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activity_entries_total",
			Help:      "Activity log entries by action",
		},
		[]string{"action"},
	)

	EventLogWriteErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_log_write_errors_total",
			Help:      "Activity log appends that failed and were dropped",
		},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter",
		},
	)
)

var registerOnce sync.Once

// RegisterEngineMetrics registers engine, activity and rate-limit metrics. Safe to call repeatedly.
func RegisterEngineMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(EngineRequestsTotal)
		prometheus.MustRegister(EngineRequestDuration)
		prometheus.MustRegister(ActivityEntriesTotal)
		prometheus.MustRegister(EventLogWriteErrorsTotal)
		prometheus.MustRegister(RateLimitedTotal)
	})
}

// EngineObserver feeds engine command outcomes into the Prometheus metrics.
type EngineObserver struct{}

// ObserveEngine implements db.Observer.
func (EngineObserver) ObserveEngine(op string, d time.Duration, err error) {
	EngineRequestsTotal.WithLabelValues(op, engineStatus(err)).Inc()
	EngineRequestDuration.WithLabelValues(op).Observe(d.Seconds())
}

func engineStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, db.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
