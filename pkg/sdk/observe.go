package partpilot

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Call results reported in the result label. Expected outcomes such as an
// offline miss are distinguished from failures.
const (
	resultOK                = "ok"
	resultOfflineNoCache    = "offline_no_cache"
	resultNotFound          = "not_found"
	resultValidation        = "validation"
	resultInvalidTransition = "invalid_transition"
	resultIntegration       = "integration"
	resultPersistence       = "persistence"
	resultError             = "error"
)

// sdkMetrics holds the prometheus collectors of one Client.
type sdkMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "partpilot",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "PartPilot client calls (search, cart, jobs, cache) by result.",
		}, []string{"call", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "partpilot",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "PartPilot client call latency. Online searches include the part lookup.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
		}, []string{"call"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or adopts the collector already registered
// under the same name so several clients can share one registry.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("partpilot: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("partpilot: register metric: %w", err)
	}
	return nil
}

// callResult classifies err into a result label.
func callResult(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, ErrOfflineNoCache):
		return resultOfflineNoCache
	case errors.Is(err, ErrNotFound):
		return resultNotFound
	case errors.Is(err, ErrValidation):
		return resultValidation
	case errors.Is(err, ErrInvalidTransition):
		return resultInvalidTransition
	case errors.Is(err, ErrIntegration):
		return resultIntegration
	case errors.Is(err, ErrPersistence):
		return resultPersistence
	default:
		return resultError
	}
}

// expected reports results that reflect caller input or offline state rather than a fault.
func expected(result string) bool {
	switch result {
	case resultOfflineNoCache, resultNotFound, resultValidation, resultInvalidTransition:
		return true
	}
	return false
}

// observer records metrics and logs for client calls. A nil observer is a no-op.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(call string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	result := callResult(err)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(call, result).Inc()
		o.metrics.duration.WithLabelValues(call).Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	switch {
	case err == nil:
		o.logger.Debug("call completed", "call", call, "duration", dur)
	case expected(result):
		o.logger.Info("call declined", "call", call, "result", result, "error", err)
	default:
		o.logger.Warn("call failed", "call", call, "result", result, "duration", dur, "error", err)
	}
}
