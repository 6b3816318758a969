// Package metrics exposes Prometheus counters and histograms for HTTP
// traffic, backend calls and the query cache.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invest_portal"

// Registry owns a private Prometheus registry and the portal's metrics.
type Registry struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	queryEvents     *prometheus.CounterVec
}

// New creates a registry with Go and process collectors registered.
func New() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Calls to the market data backend, by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Market data backend latency.",
			Buckets:   []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		queryEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_events_total",
			Help:      "Query cache lookups, by resource and event (hit, miss, shared, error).",
		}, []string{"resource", "event"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.backendRequests,
		r.backendDuration,
		r.queryEvents,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

// ObserveHTTP records one served request.
func (r *Registry) ObserveHTTP(method, route string, status int, d time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// BackendRequest records one backend call.
func (r *Registry) BackendRequest(endpoint, outcome string, d time.Duration) {
	r.backendRequests.WithLabelValues(endpoint, outcome).Inc()
	r.backendDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// QueryEvent records one query cache lookup.
func (r *Registry) QueryEvent(resource, event string) {
	r.queryEvents.WithLabelValues(resource, event).Inc()
}
