// Package metrics collects and exposes Prometheus metrics for the HTTP
// surface and the auth core.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records the service metrics.
type Collector struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	latency      prometheus.Histogram
	authFailures *prometheus.CounterVec
	sessions     prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emeraldhub_http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"pattern", "status"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "emeraldhub_http_request_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emeraldhub_auth_failures_total",
			Help: "Failed session resolutions by reason.",
		}, []string{"reason"}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "emeraldhub_sessions_issued_total",
			Help: "Bearer sessions issued (register, login, external exchange).",
		}),
	}
	reg.MustRegister(c.requests, c.latency, c.authFailures, c.sessions)
	return c
}

// RecordAuthFailure counts one failed session resolution. The reason is
// internal-only; the public 401 body stays uniform.
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// RecordSessionIssued counts one issued session.
func (c *Collector) RecordSessionIssued() {
	c.sessions.Inc()
}

// Handler serves the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency. It labels by the chi
// route pattern so parameterized paths don't explode cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				pattern = p
			}
		}
		c.requests.WithLabelValues(pattern, strconv.Itoa(sw.status)).Inc()
		c.latency.Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
