// Package metrics exposes Prometheus collectors for the HTTP API and its integrations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wellmind"

// Metrics holds the application collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	submissions  *prometheus.CounterVec
	external     *prometheus.CounterVec
	notified     *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the process and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		}, []string{"method", "path"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "survey",
			Name:      "submissions_total",
			Help:      "Committed survey submissions by risk label.",
		}, []string{"label"}),
		external: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "external",
			Name:      "calls_total",
			Help:      "External integration calls by outcome (delivered or simulated).",
		}, []string{"integration", "outcome"}),
		notified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "employees_total",
			Help:      "Employees considered by the high-risk sweep, by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.submissions,
		m.external,
		m.notified,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count, duration and in-flight requests. The path label is the route
// template (e.g. /api/employee/:id/history) so ids do not explode cardinality; unmatched routes use "unmatched".
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveSubmission counts a committed survey submission.
func (m *Metrics) ObserveSubmission(label string) {
	m.submissions.WithLabelValues(label).Inc()
}

// ObserveExternal counts one ledger, workflow, AI scoring or email call.
func (m *Metrics) ObserveExternal(integration string, delivered bool) {
	outcome := "simulated"
	if delivered {
		outcome = "delivered"
	}
	m.external.WithLabelValues(integration, outcome).Inc()
}

// ObserveSweep counts the employees notified and skipped by one high-risk sweep.
func (m *Metrics) ObserveSweep(notified, skipped int) {
	m.notified.WithLabelValues("notified").Add(float64(notified))
	m.notified.WithLabelValues("skipped").Add(float64(skipped))
}
