// Package metrics exposes Prometheus counters for page views, theme changes and reveals.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	PageViews    *prometheus.CounterVec
	ThemeChanges *prometheus.CounterVec
	Reveals      *prometheus.CounterVec
	Scenes       *prometheus.CounterVec
	Typeface     *prometheus.GaugeVec
}

// New registers all collectors, plus the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		PageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Tracked page requests by route. Requests with DNT: 1 are not counted.",
		}, []string{"route"}),
		ThemeChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "theme_changes_total",
			Help:      "Theme toggles by the theme switched to.",
		}, []string{"theme"}),
		Reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_reveals_total",
			Help:      "Sections that scrolled into view for the first time on a page mount.",
		}, []string{"section"}),
		Scenes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenes_generated_total",
			Help:      "Decorative scenes generated by theme.",
		}, []string{"theme"}),
		Typeface: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "typeface_status",
			Help:      "1 for the current hero typeface loader status, 0 otherwise.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.PageViews,
		m.ThemeChanges,
		m.Reveals,
		m.Scenes,
		m.Typeface,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// SetTypefaceStatus marks status as the current loader state.
func (m *Metrics) SetTypefaceStatus(status string, all ...string) {
	for _, s := range all {
		m.Typeface.WithLabelValues(s).Set(0)
	}
	m.Typeface.WithLabelValues(status).Set(1)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
