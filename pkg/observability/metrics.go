package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements [StageHooks] and [HTTPHooks] on a private Prometheus
// registry. A CLI run is short-lived, so the registry is meant to be written
// out once with [Metrics.WriteTextfile] for the node exporter's textfile
// collector rather than scraped.
type Metrics struct {
	registry *prometheus.Registry

	stageTotal    *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	stageItems    *prometheus.GaugeVec

	httpRequests *prometheus.CounterVec
	httpErrors   *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the swiftdeps collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swiftdeps_stage_total",
				Help: "Number of completed pipeline stages by outcome.",
			},
			[]string{"stage", "result"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swiftdeps_stage_duration_seconds",
				Help:    "Time taken by each pipeline stage.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		stageItems: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "swiftdeps_stage_items",
				Help: "Items produced by the last successful run of each stage.",
			},
			[]string{"stage"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swiftdeps_http_requests_total",
				Help: "HTTP responses received by method and status code.",
			},
			[]string{"method", "code"},
		),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swiftdeps_http_errors_total",
				Help: "Failed HTTP requests by method.",
			},
			[]string{"method"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swiftdeps_http_request_duration_seconds",
				Help:    "Time taken by HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}

	m.registry.MustRegister(
		m.stageTotal,
		m.stageDuration,
		m.stageItems,
		m.httpRequests,
		m.httpErrors,
		m.httpDuration,
	)
	return m
}

// Gatherer exposes the registry, e.g. for tests or an HTTP handler.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) OnStageStart(context.Context, string) {}

func (m *Metrics) OnStageComplete(_ context.Context, stage string, count int, d time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.stageTotal.WithLabelValues(stage, result).Inc()
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err == nil {
		m.stageItems.WithLabelValues(stage).Set(float64(count))
	}
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, method, _, _ string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, _, _ string, _ error) {
	m.httpErrors.WithLabelValues(method).Inc()
}
