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

// Metrics collects Prometheus metrics for the order backend.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	importsTotal    *prometheus.CounterVec
	importedLines   prometheus.Counter
	exportsTotal    *prometheus.CounterVec
	exportedSheets  prometheus.Counter
}

// New creates the collectors on a private registry, together with the Go runtime and
// process collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_http_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "orders_http_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		importsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_imports_total",
				Help: "Spreadsheet imports by outcome",
			},
			[]string{"outcome"},
		),
		importedLines: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_imported_lines_total",
				Help: "Order lines in the store after each successful import, summed",
			},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_exports_total",
				Help: "Report exports by outcome",
			},
			[]string{"outcome"},
		),
		exportedSheets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_exported_sheets_total",
				Help: "Product sheets written into exported reports",
			},
		),
	}
}

// RecordImport counts one import
func (m *Metrics) RecordImport(success bool, totalRows int) {
	if m == nil {
		return
	}
	m.importsTotal.WithLabelValues(outcome(success)).Inc()
	if success {
		m.importedLines.Add(float64(totalRows))
	}
}

// RecordExport counts one export
func (m *Metrics) RecordExport(success bool, sheets int) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(outcome(success)).Inc()
	if success {
		m.exportedSheets.Add(float64(sheets))
	}
}

// Middleware records every request under its route pattern
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
