package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_calculations_total",
			Help: "Total number of deal calculations by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deal_calculation_duration_seconds",
			Help:    "Duration of deal calculations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"operation"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_cache_lookups_total",
			Help: "Result cache lookups by outcome",
		},
		[]string{"result"},
	)

	MonteCarloTrials = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deal_monte_carlo_trials_total",
			Help: "Total number of Monte-Carlo trials evaluated",
		},
	)

	RateLimitedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deal_http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)
)
