// Package metrics exposes Prometheus metrics for QR generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stage latency buckets; rendering with a logo sits around 10-50ms.
var StageLatencyBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0}

// PayloadSizeBuckets cover the byte length of canonical payloads.
var PayloadSizeBuckets = []float64{16, 32, 64, 128, 256, 512, 1024, 2048, 2953}

// Outcomes reported by CountRequest.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeRenderError = "render_error"
)

// Metrics holds the collectors for one registry. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts generation requests by kind and outcome
	RequestsTotal *prometheus.CounterVec

	// StageDuration tracks each pipeline stage
	StageDuration *prometheus.HistogramVec

	// PayloadBytes tracks canonical payload sizes by kind
	PayloadBytes *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrcode_requests_total",
				Help: "QR code generation requests by content kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrcode_stage_duration_seconds",
				Help:    "Duration of each generation stage in seconds",
				Buckets: StageLatencyBuckets,
			},
			[]string{"stage"},
		),
		PayloadBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrcode_payload_bytes",
				Help:    "Size of the canonical payload in bytes",
				Buckets: PayloadSizeBuckets,
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		m.RequestsTotal,
		m.StageDuration,
		m.PayloadBytes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) CountRequest(kind, outcome string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "unknown"
	}
	m.RequestsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveStage records the time elapsed since start for stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObservePayload(kind string, size int) {
	if m == nil {
		return
	}
	m.PayloadBytes.WithLabelValues(kind).Observe(float64(size))
}
