// Package metrics exposes Prometheus counters for badge operations and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation names
const (
	OpExport = "export"
	OpImport = "import"
	OpRename = "rename"
)

// Outcomes
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics owns a private registry so several instances can coexist in tests
type Metrics struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	records    *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "badge_operations_total",
				Help: "Export, import and rename operations by record kind and outcome",
			},
			[]string{"operation", "kind", "outcome"},
		),
		records: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "badge_records_total",
				Help: "Records written to or recovered from archives",
			},
			[]string{"operation", "kind"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "badge_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "badge_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

// ObserveOperation counts one finished operation. Safe on a nil receiver.
func (m *Metrics) ObserveOperation(op, kind, outcome string, records int) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, kind, outcome).Inc()
	if outcome == OutcomeSuccess && records > 0 {
		m.records.WithLabelValues(op, kind).Add(float64(records))
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency per matched route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
