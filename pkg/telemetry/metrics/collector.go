// Package metrics exposes Prometheus metrics for exports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records export activity. A nil *Collector records nothing, so
// callers need not check whether metrics are enabled.
type Collector struct {
	registry *prometheus.Registry

	exports  *prometheus.CounterVec
	failures *prometheus.CounterVec
	rows     *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector registers the export metrics under namespace in registry.
// A nil registry gets a fresh one.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "qprint"
	}

	c := &Collector{
		registry: registry,
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Completed exports by format and output mode.",
		}, []string{"format", "mode"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_failures_total",
			Help:      "Exports that failed, by format and reason.",
		}, []string{"format", "reason"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_rows_total",
			Help:      "Data rows written by materialized exports.",
		}, []string{"format"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_bytes_total",
			Help:      "Body bytes written by materialized exports.",
		}, []string{"format"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Time from query start to the last byte written.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"format", "mode"}),
	}

	registry.MustRegister(c.exports, c.failures, c.rows, c.bytes, c.duration)
	return c
}

// RecordExport records a successful export. rows and bytes are only
// counted for materialized output.
func (c *Collector) RecordExport(format, mode string, rows, bytes int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.exports.WithLabelValues(format, mode).Inc()
	c.duration.WithLabelValues(format, mode).Observe(elapsed.Seconds())
	if mode == "file" {
		c.rows.WithLabelValues(format).Add(float64(rows))
		c.bytes.WithLabelValues(format).Add(float64(bytes))
	}
}

// RecordFailure records a failed export. reason is a short, bounded label
// such as "params", "query" or "scan".
func (c *Collector) RecordFailure(format, reason string) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(format, reason).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
