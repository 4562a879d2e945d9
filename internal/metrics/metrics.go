// Package metrics exposes Prometheus collectors for the analyzer service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts finished analyses, labeled by outcome.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seo_analyses_total",
		Help: "Total number of finished analyses, labeled by outcome.",
	}, []string{"outcome"})

	// AnalysisDurationSeconds tracks end-to-end pipeline latency.
	AnalysisDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "seo_analysis_duration_seconds",
		Help:    "End-to-end duration of one analysis pipeline run.",
		Buckets: prometheus.DefBuckets,
	})

	// EnrichmentFailuresTotal counts insight generator calls that failed or
	// timed out; these never fail a report.
	EnrichmentFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seo_enrichment_failures_total",
		Help: "Total number of failed or timed-out insight enrichment calls.",
	})

	// ScorerFaultsTotal counts category scorers that panicked and were
	// fault-isolated to a zero score.
	ScorerFaultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seo_scorer_faults_total",
		Help: "Total number of fault-isolated category scorer panics.",
	}, []string{"category"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests, labeled by method and code.",
	}, []string{"method", "code"})

	httpRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Histogram of HTTP request latencies, labeled by method and route.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"method", "route"})
)

// ObserveHTTPRequest records metrics for one HTTP request.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
