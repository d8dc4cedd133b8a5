package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	LatencyHistogram *prometheus.HistogramVec
	CacheResults     *prometheus.CounterVec
	TransformCounter *prometheus.CounterVec
	registry         *prometheus.Registry
}

var (
	metricsInstance *Metrics
	metricsOnce     sync.Once
)

// NewMetrics creates and registers all metrics (singleton pattern for tests)
func NewMetrics() *Metrics {
	// Use singleton pattern to avoid duplicate registration
	metricsOnce.Do(func() {
		registry := prometheus.NewRegistry()

		m := &Metrics{
			RequestCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pixelvault_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			LatencyHistogram: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "pixelvault_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path"},
			),
			CacheResults: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pixelvault_cache_results_total",
					Help: "Derived-asset cache lookups by result",
				},
				[]string{"result"},
			),
			TransformCounter: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "pixelvault_transforms_total",
					Help: "Completed image transforms by output format",
				},
				[]string{"format"},
			),
			registry: registry,
		}

		registry.MustRegister(m.RequestCounter)
		registry.MustRegister(m.LatencyHistogram)
		registry.MustRegister(m.CacheResults)
		registry.MustRegister(m.TransformCounter)

		metricsInstance = m
	})

	return metricsInstance
}

// Handler serves the metrics registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// IncrementRequest increments the request counter
func (m *Metrics) IncrementRequest(method, path string, status int) {
	m.RequestCounter.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
}

// RecordLatency records request latency
func (m *Metrics) RecordLatency(method, path string, seconds float64) {
	m.LatencyHistogram.WithLabelValues(method, path).Observe(seconds)
}

// RecordCacheResult counts a cache hit or miss on the media path.
func (m *Metrics) RecordCacheResult(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheResults.WithLabelValues(result).Inc()
}

// RecordTransform counts a completed transform.
func (m *Metrics) RecordTransform(format string) {
	m.TransformCounter.WithLabelValues(format).Inc()
}
