package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

// Metrics exposes the monitor's Prometheus instruments.
type Metrics struct {
	registry *prometheus.Registry

	ticketStatus  *prometheus.GaugeVec
	breachTotal   *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	cycleErrors   prometheus.Counter
	cacheServed   prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpErrors    *prometheus.CounterVec
}

// NewMetrics registers the monitor instruments on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ticketStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sla_tickets",
			Help: "Tickets per customer, deadline column, and status category as of the last cycle.",
		}, []string{"customer", "column", "status"}),
		breachTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sla_breaches_total",
			Help: "Newly detected SLA breaches.",
		}, []string{"customer", "column"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sla_cycle_duration_seconds",
			Help:    "Duration of a full fetch-evaluate-classify cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		cycleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sla_cycle_errors_total",
			Help: "Evaluation cycles that failed outright.",
		}),
		cacheServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sla_cycles_from_cache_total",
			Help: "Cycles that fell back to the cached snapshot batch.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by path, method, and status.",
		}, []string{"path", "method", "status"}),
		httpErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "HTTP errors by path, method, and error code.",
		}, []string{"path", "method", "code"}),
	}

	registry.MustRegister(
		m.ticketStatus,
		m.breachTotal,
		m.cycleDuration,
		m.cycleErrors,
		m.cacheServed,
		m.httpRequests,
		m.httpErrors,
	)
	return m
}

// ObserveCycle records a completed evaluation cycle and resets the per-status
// gauges to the fresh counts.
func (m *Metrics) ObserveCycle(result *domain.EvaluationResult, duration time.Duration) {
	if m == nil || result == nil {
		return
	}
	m.cycleDuration.Observe(duration.Seconds())
	if result.FromCache {
		m.cacheServed.Inc()
	}

	m.ticketStatus.Reset()
	for _, ticket := range result.Tickets {
		customer := ticket.Snapshot.CustomerName
		m.ticketStatus.WithLabelValues(customer, string(domain.ColumnResponse), string(ticket.ResponseStatus)).Inc()
		m.ticketStatus.WithLabelValues(customer, string(domain.ColumnResolution), string(ticket.ResolutionStatus)).Inc()
	}
}

// RecordCycleError counts a cycle that produced no result.
func (m *Metrics) RecordCycleError() {
	if m == nil {
		return
	}
	m.cycleErrors.Inc()
}

// RecordBreach counts a newly detected breach.
func (m *Metrics) RecordBreach(customer string, column domain.DeadlineColumn) {
	if m == nil {
		return
	}
	m.breachTotal.WithLabelValues(customer, string(column)).Inc()
}

// RecordRequest increments the HTTP request counter.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

// RecordError increments the HTTP error counter.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.httpErrors.WithLabelValues(path, method, code).Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
