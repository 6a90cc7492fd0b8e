// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "line_assistant"

// Metrics groups every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer. Labels: method, route, status
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	// Webhook events by kind. Labels: event, message, handled (true/false)
	webhookEvents *prometheus.CounterVec

	// Grounding outcomes. Labels: source (search, keyword, fallback)
	grounding *prometheus.CounterVec

	// Completion calls. Labels: status (success, error)
	completions       *prometheus.CounterVec
	completionLatency prometheus.Histogram

	// Reply API calls. Labels: status (success, error)
	replies *prometheus.CounterVec

	// Conversations restarted via the restart command or a follow event.
	restarts prometheus.Counter
}

// New creates collectors on a fresh registry, together with Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
		webhookEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Webhook events received by kind",
		}, []string{"event", "message", "handled"}),
		grounding: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grounding",
			Name:      "resolutions_total",
			Help:      "Grounding resolutions by source",
		}, []string{"source"}),
		completions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "requests_total",
			Help:      "Completion calls by outcome",
		}, []string{"status"}),
		completionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "completion",
			Name:      "duration_seconds",
			Help:      "Completion call latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 60},
		}),
		replies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reply",
			Name:      "requests_total",
			Help:      "Reply API calls by outcome",
		}, []string{"status"}),
		restarts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "restarts_total",
			Help:      "Conversations restarted",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) WebhookEvent(event, message string, handled bool) {
	h := "false"
	if handled {
		h = "true"
	}
	m.webhookEvents.WithLabelValues(event, message, h).Inc()
}

func (m *Metrics) Grounding(source string) {
	m.grounding.WithLabelValues(source).Inc()
}

func (m *Metrics) Completion(err error, d time.Duration) {
	m.completions.WithLabelValues(status(err)).Inc()
	m.completionLatency.Observe(d.Seconds())
}

func (m *Metrics) Reply(err error) {
	m.replies.WithLabelValues(status(err)).Inc()
}

func (m *Metrics) Restart() {
	m.restarts.Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
