package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Part lookup (LLM) metrics.
var (
	LookupRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_requests_total",
			Help:      "Total number of part lookup requests",
		},
		[]string{"provider", "model", "status"},
	)

	LookupRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_request_duration_seconds",
			Help:      "Part lookup request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"provider", "model"},
	)

	LookupTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_tokens_total",
			Help:      "Total LLM tokens consumed by part lookups",
		},
		[]string{"provider", "model", "type"},
	)

	LookupErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_errors_total",
			Help:      "Total part lookup errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	LookupBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lookup_budget_tokens_remaining",
			Help:      "Remaining lookup token budget",
		},
		[]string{"provider", "period"},
	)
)

// Search flow metrics.
var (
	SearchCacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_lookups_total",
			Help:      "Offline search cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Part searches by outcome",
		},
		[]string{"outcome"}, // "online" / "cached" / "offline_miss" / "error"
	)

	Online = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online",
			Help:      "1 when the part lookup integration is reachable",
		},
	)
)

var registerOnce sync.Once

// RegisterDomainMetrics registers lookup, search and connectivity metrics. Safe to call repeatedly.
func RegisterDomainMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			LookupRequestsTotal,
			LookupRequestDuration,
			LookupTokensTotal,
			LookupErrorsTotal,
			LookupBudgetTokensRemaining,
			SearchCacheLookupsTotal,
			SearchesTotal,
			Online,
		)
	})
}
