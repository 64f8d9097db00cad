// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "papercode"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Generation requests by project type and outcome code",
		},
		[]string{"project_type", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "End-to-end generation duration in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"project_type"},
	)

	FilesGenerated = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "files",
			Help:      "Number of files present under the output root after generation",
			Buckets:   prometheus.LinearBuckets(0, 5, 8),
		},
		[]string{"project_type"},
	)

	AICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "calls_total",
			Help:      "AI description calls by outcome",
		},
		[]string{"model", "status"},
	)

	AICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "call_duration_seconds",
			Help:      "AI description call duration in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)
)

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(method, path, status string, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// RecordGeneration records one orchestrated generation. status is "ok" or an
// error code.
func RecordGeneration(projectType, status string, files int, elapsed time.Duration) {
	GenerationsTotal.WithLabelValues(projectType, status).Inc()
	GenerationDuration.WithLabelValues(projectType).Observe(elapsed.Seconds())
	if status == "ok" {
		FilesGenerated.WithLabelValues(projectType).Observe(float64(files))
	}
}

// RecordAICall records one AI provider call.
func RecordAICall(model, status string, elapsed time.Duration) {
	AICallsTotal.WithLabelValues(model, status).Inc()
	AICallDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}
