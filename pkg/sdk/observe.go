package searchgate

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// operation names a public Client call.
type operation string

const (
	opPing   operation = "ping"
	opInsert operation = "insert"
	opSearch operation = "search"
)

var allOperations = []operation{opPing, opInsert, opSearch}

// Call outcomes. Rejected input is kept apart from engine failures.
const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, ErrValidation):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

// clientMetrics counts Client calls per operation and outcome.
type clientMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newClientMetrics(reg prometheus.Registerer) (*clientMetrics, error) {
	calls, err := registerShared(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "searchgate",
		Subsystem: "sdk",
		Name:      "calls_total",
		Help:      "Client calls by operation and outcome (ok, invalid, error).",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}
	duration, err := registerShared(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "searchgate",
		Subsystem: "sdk",
		Name:      "call_duration_seconds",
		Help:      "Client call latency by operation.",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	// Export every series at zero so dashboards see the full operation set before traffic.
	for _, op := range allOperations {
		for _, outcome := range []string{outcomeOK, outcomeInvalid, outcomeError} {
			calls.WithLabelValues(string(op), outcome)
		}
		duration.WithLabelValues(string(op))
	}
	return &clientMetrics{calls: calls, duration: duration}, nil
}

// registerShared registers c, or returns the collector already registered
// under the same descriptor so several Clients can share one registry.
func registerShared[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var dup prometheus.AlreadyRegisteredError
	if !errors.As(err, &dup) {
		return c, fmt.Errorf("searchgate: register metric: %w", err)
	}
	existing, ok := dup.ExistingCollector.(T)
	if !ok {
		return c, fmt.Errorf("searchgate: metric registered as %T", dup.ExistingCollector)
	}
	return existing, nil
}

// observer records one log line and metric sample per Client call.
// A nil observer, or one without logger or metrics, records nothing.
type observer struct {
	log     *slog.Logger
	metrics *clientMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{}
	if logger != nil {
		o.log = logger.With(slog.String("component", "searchgate"))
	}
	if reg != nil {
		m, err := newClientMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

func (o *observer) observe(op operation, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	outcome := outcomeOf(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(string(op), outcome).Inc()
		o.metrics.duration.WithLabelValues(string(op)).Observe(elapsed.Seconds())
	}
	if o.log == nil {
		return
	}

	attrs := []any{slog.String("operation", string(op)), slog.Duration("elapsed", elapsed)}
	switch outcome {
	case outcomeOK:
		o.log.Debug("call completed", attrs...)
	case outcomeInvalid:
		o.log.Info("call rejected", append(attrs, slog.Any("error", err))...)
	default:
		o.log.Warn("call failed", append(attrs, slog.Any("error", err))...)
	}
}
