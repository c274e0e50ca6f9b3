package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records HTTP, pricing and audit metrics for the API.
type Collector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	quotes   *prometheus.CounterVec
	audit    *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// New registers the API metrics on the provided registry. A nil registry
// yields a collector whose methods are no-ops.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		return &Collector{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ooh_http_requests_total",
		Help: "HTTP requests served, by route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ooh_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ooh_pricing_quotes_total",
		Help: "Price quotes produced by the pricing engine.",
	}, []string{"path", "third_party"})
	audit := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ooh_audit_events_total",
		Help: "Audit events recorded, by type.",
	}, []string{"event_type"})
	reg.MustRegister(requests, duration, quotes, audit)
	return &Collector{
		requests: requests,
		duration: duration,
		quotes:   quotes,
		audit:    audit,
		gatherer: reg,
	}
}

// ObserveRequest records a finished HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil || c.requests == nil {
		return
	}
	route = normalizeLabel(route)
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncQuote counts a computed quote. path is "inventory", "code" or "simulation".
func (c *Collector) IncQuote(path string, thirdParty bool) {
	if c == nil || c.quotes == nil {
		return
	}
	c.quotes.WithLabelValues(normalizeLabel(path), strconv.FormatBool(thirdParty)).Inc()
}

// IncAuditEvent counts an audit entry written to storage.
func (c *Collector) IncAuditEvent(eventType string) {
	if c == nil || c.audit == nil {
		return
	}
	c.audit.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
