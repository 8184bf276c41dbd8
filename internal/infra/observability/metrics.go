// Package observability exposes application metrics to Prometheus.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics of the service and implements
// adapter.MetricsRecorder.
type Metrics struct {
	// Registry owns these metrics and backs the /metrics endpoint.
	Registry *prometheus.Registry

	factory         promauto.Factory
	aiRequests      *prometheus.CounterVec
	aiDuration      *prometheus.HistogramVec
	ledgerMutations *prometheus.CounterVec
	persistFailures prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		factory:  factory,

		aiRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realty_ai_requests_total",
				Help: "Language model calls by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		aiDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "realty_ai_request_duration_seconds",
				Help:    "Duration of language model calls.",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
			},
			[]string{"operation"},
		),
		ledgerMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realty_ledger_mutations_total",
				Help: "Transactions added to or removed from the ledger.",
			},
			[]string{"operation"},
		),
		persistFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "realty_persist_failures_total",
				Help: "Failed saves of the transaction collection.",
			},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "realty_http_requests_total",
				Help: "HTTP requests by route and status.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "realty_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveAIRequest records one language model call.
func (m *Metrics) ObserveAIRequest(operation, outcome string, duration time.Duration) {
	m.aiRequests.WithLabelValues(operation, outcome).Inc()
	if duration > 0 {
		m.aiDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}
}

// IncLedgerMutation counts a ledger change.
func (m *Metrics) IncLedgerMutation(operation string) {
	m.ledgerMutations.WithLabelValues(operation).Inc()
}

// IncPersistFailure counts a failed save.
func (m *Metrics) IncPersistFailure() {
	m.persistFailures.Inc()
}

// ObserveHTTPRequest records a served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RegisterLedgerSize exposes the current number of transactions.
func (m *Metrics) RegisterLedgerSize(size func() int) {
	m.factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "realty_ledger_transactions",
			Help: "Transactions currently held by the ledger.",
		},
		func() float64 { return float64(size()) },
	)
}
