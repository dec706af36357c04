package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamRetriesTotal    *prometheus.CounterVec

	SearchesTotal    *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	SearchesInFlight prometheus.Gauge
}

// New builds a private registry so several instances can live in one
// process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trends_upstream_requests_total",
				Help: "Total number of requests sent to the trends backend",
			},
			[]string{"endpoint", "status"},
		),
		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trends_upstream_request_duration_seconds",
				Help:    "Trends backend request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"endpoint"},
		),
		UpstreamRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trends_upstream_retries_total",
				Help: "Total number of retried backend requests",
			},
			[]string{"endpoint"},
		),

		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trends_searches_total",
				Help: "Total number of report searches served",
			},
			[]string{"report", "status"},
		),
		SearchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trends_search_duration_seconds",
				Help:    "Report search duration in seconds, explore stage included",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"report"},
		),
		SearchesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "trends_searches_in_flight",
				Help: "Number of report searches currently running",
			},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) RecordUpstream(endpoint, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordRetry(endpoint string) {
	m.UpstreamRetriesTotal.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) RecordSearch(report, status string, duration time.Duration) {
	m.SearchesTotal.WithLabelValues(report, status).Inc()
	m.SearchDuration.WithLabelValues(report).Observe(duration.Seconds())
}

func (m *Metrics) IncSearchesInFlight() {
	m.SearchesInFlight.Inc()
}

func (m *Metrics) DecSearchesInFlight() {
	m.SearchesInFlight.Dec()
}
