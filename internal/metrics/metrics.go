// Package metrics exposes Prometheus metrics for the detector service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Latency buckets for the HTTP cycle and the scoring call itself.
var (
	httpLatencyBuckets    = []float64{0.01, 0.025, 0.05, 0.075, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0}
	scoringLatencyBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}
)

// Metrics holds all Prometheus collectors for the service. Each instance
// carries its own registry so tests can create them freely.
type Metrics struct {
	registry *prometheus.Registry

	// PredictionsTotal counts predictions by verdict label and scoring method.
	PredictionsTotal *prometheus.CounterVec

	// ScoringLatency tracks the scoring call only, without HTTP overhead.
	ScoringLatency prometheus.Histogram

	// HTTPRequestDuration tracks the full request/response cycle.
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PredictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "detector_predictions_total",
				Help: "Total predictions by label and scoring method",
			},
			[]string{"label", "method"},
		),
		ScoringLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "detector_scoring_latency_seconds",
				Help:    "Latency of the scoring call",
				Buckets: scoringLatencyBuckets,
			},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: httpLatencyBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
	}

	m.registry.MustRegister(m.PredictionsTotal, m.ScoringLatency, m.HTTPRequestDuration)

	// Pre-initialize the label combinations so the series exist immediately.
	for _, label := range []string{"fake", "real"} {
		for _, method := range []string{"heuristic", "model"} {
			m.PredictionsTotal.WithLabelValues(label, method)
		}
	}

	return m
}

// ObservePrediction records one prediction outcome and its latency.
func (m *Metrics) ObservePrediction(label, method string, seconds float64) {
	m.PredictionsTotal.WithLabelValues(label, method).Inc()
	m.ScoringLatency.Observe(seconds)
}

// Handler returns the /metrics exposition handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request duration per route. The /metrics endpoint
// itself is skipped.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		m.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
