// Package metrics collects and exposes the Prometheus metrics of the service.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecopontos-backend-go/internal/db"
)

// Collector holds the HTTP, store and domain metrics. It implements
// db.OperationRecorder and core.EventRecorder.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	storeOps     *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	events       *prometheus.CounterVec
	rateLimited  prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecopontos_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecopontos_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecopontos_store_operations_total",
			Help: "Store calls by operation and result (ok, aborted, error).",
		}, []string{"operation", "result"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecopontos_store_operation_duration_seconds",
			Help:    "Store call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecopontos_domain_events_total",
			Help: "Domain events such as created collection points or approved suggestions.",
		}, []string{"event"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecopontos_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.storeOps,
		c.storeLatency,
		c.events,
		c.rateLimited,
	)
	return c
}

// RecordHTTPRequest records one served request. route is the matched route pattern,
// not the raw path, to keep label cardinality bounded.
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveStoreOperation records one store call. A missing node is not a failure, and a
// transaction whose update function declined to write (missing node, suggestion already
// resolved) is counted as "aborted".
func (c *Collector) ObserveStoreOperation(op string, duration time.Duration, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, db.ErrTransactionAborted):
		result = "aborted"
	case errors.Is(err, db.ErrNotFound):
	default:
		result = "error"
	}
	c.storeOps.WithLabelValues(op, result).Inc()
	c.storeLatency.WithLabelValues(op).Observe(duration.Seconds())
}

func (c *Collector) RecordEvent(event string) {
	c.events.WithLabelValues(event).Inc()
}

func (c *Collector) RecordRateLimited() {
	c.rateLimited.Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
