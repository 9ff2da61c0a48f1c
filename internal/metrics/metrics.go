package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	instance *Metrics
	once     sync.Once
)

type Metrics struct {
	registry *prometheus.Registry

	fetchesTotal   *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	servedRequests *prometheus.CounterVec
	matchedItems   *prometheus.GaugeVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		fetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "datasource_fetches_total",
				Help: "The number of page fetches by data source and outcome",
			},
			[]string{"source", "outcome"},
		),
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "datasource_fetch_duration_ms",
				Help:    "Histogram of the page fetch duration in milliseconds",
				Buckets: []float64{1, 10, 100, 250, 500, 1000, 2000},
			},
			[]string{"source"},
		),
		servedRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "served_requests_total",
				Help: "The number of list requests served by the mock backend",
			},
			[]string{"code"},
		),
		matchedItems: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "datasource_matched_items",
				Help: "The number of items matching the filters of the last fetch",
			},
			[]string{"source"},
		),
	}
	reg.MustRegister(m.fetchesTotal)
	reg.MustRegister(m.fetchDuration)
	reg.MustRegister(m.servedRequests)
	reg.MustRegister(m.matchedItems)
	return m
}

// Default returns the process-wide instance, creating it on first use.
func Default() *Metrics {
	once.Do(func() {
		instance = New()
	})
	return instance
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records one page fetch.
func (m *Metrics) ObserveFetch(source string, elapsed time.Duration, total int, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.fetchesTotal.With(prometheus.Labels{"source": source, "outcome": outcome}).Inc()
	m.fetchDuration.With(prometheus.Labels{"source": source}).Observe(float64(elapsed.Milliseconds()))
	if err == nil {
		m.matchedItems.With(prometheus.Labels{"source": source}).Set(float64(total))
	}
}

// IncServedRequests increments served_requests_total for an HTTP status code.
func (m *Metrics) IncServedRequests(code string) {
	m.servedRequests.With(prometheus.Labels{"code": code}).Inc()
}
