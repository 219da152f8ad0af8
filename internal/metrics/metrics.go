// Package metrics exposes page render counters for the HTTP server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Renders      *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	Unsupported  *prometheus.CounterVec
	ThemeToggles *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "persona",
			Name:      "page_renders_total",
			Help:      "Pages rendered, by archetype.",
		}, []string{"archetype"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "persona",
			Name:      "page_failures_total",
			Help:      "Pages that rendered the failure view, by archetype and HTTP status.",
		}, []string{"archetype", "status"}),
		Unsupported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "persona",
			Name:      "unsupported_sections_total",
			Help:      "Sections rendered as an unsupported or unknown notice, by kind.",
		}, []string{"kind"}),
		ThemeToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "persona",
			Name:      "theme_toggles_total",
			Help:      "Theme toggles, by resulting mode.",
		}, []string{"mode"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "persona",
			Name:      "page_render_seconds",
			Help:      "Time spent loading and rendering a page.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"archetype"}),
	}
	m.registry.MustRegister(
		m.Renders, m.Failures, m.Unsupported, m.ThemeToggles, m.Duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRender records a successful render.
func (m *Metrics) ObserveRender(archetype string, took time.Duration, unsupported []string) {
	m.Renders.WithLabelValues(archetype).Inc()
	m.Duration.WithLabelValues(archetype).Observe(took.Seconds())
	for _, kind := range unsupported {
		m.Unsupported.WithLabelValues(kind).Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
