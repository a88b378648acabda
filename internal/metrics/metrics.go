// Package metrics exposes Prometheus collectors for report runs and the
// query API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "floorsheet"

// Metrics bundles the collectors on a private registry.
type Metrics struct {
	Registry     *prometheus.Registry
	Files        *prometheus.CounterVec
	RowsCombined prometheus.Gauge
	ReportRows   prometheus.Gauge
	RunDuration  prometheus.Histogram
	HTTPRequests *prometheus.CounterVec
}

// New registers every collector on a fresh registry, along with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Input files processed, by status (loaded or skipped).",
		}, []string{"status"}),
		RowsCombined: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows_combined",
			Help:      "Trade rows in the combined table of the last run.",
		}),
		ReportRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Rows written to the buyer/seller report by the last run.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of report runs.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests served, by method, route and status.",
		}, []string{"method", "path", "status"}),
	}
	m.Registry.MustRegister(
		m.Files,
		m.RowsCombined,
		m.ReportRows,
		m.RunDuration,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
