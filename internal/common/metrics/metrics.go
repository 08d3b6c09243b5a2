// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	MatchEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_evaluations_total",
			Help: "Talent/opportunity pairs scored, by result source",
		},
		[]string{"engine_version", "source"},
	)

	MatchOverallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_overall_score",
			Help:    "Distribution of overall match scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	CompensationAlignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compensation_alignments_total",
			Help: "Compensation alignment classifications by category",
		},
		[]string{"alignment"},
	)

	RateTableReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_table_reloads_total",
			Help: "Exchange-rate table reload attempts by result",
		},
		[]string{"result"},
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Redis cache lookups by cache and outcome",
		},
		[]string{"cache", "outcome"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// Cache outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// ObserveMatch records one evaluated pair.
func ObserveMatch(engineVersion, source string, overallScore int) {
	MatchEvaluations.WithLabelValues(engineVersion, source).Inc()
	MatchOverallScore.Observe(float64(overallScore))
}
