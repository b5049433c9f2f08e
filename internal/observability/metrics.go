package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// fetchers, loaders, and the export pipeline.
type Metrics struct {
	// Vann-nett quality fetches.
	QualityFetches      *prometheus.CounterVec // labels: element, outcome={success,error,no_data}
	QualityFetchSeconds prometheus.Histogram

	// TEOTIL model result loading.
	ModelRowsLoaded   *prometheus.CounterVec // labels: model={teotil2,teotil3}
	EmptyYearWarnings *prometheus.CounterVec // labels: model

	// Export pipeline.
	RowsExported   prometheus.Counter
	ExportErrors   prometheus.Counter
	ExportDuration prometheus.Histogram
	ExportRunning  prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QualityFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vannrapport",
			Name:      "quality_fetches_total",
			Help:      "Vann-nett quality fetches by element and outcome.",
		}, []string{"element", "outcome"}),
		QualityFetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vannrapport",
			Name:      "quality_fetch_duration_seconds",
			Help:      "Vann-nett request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ModelRowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vannrapport",
			Name:      "model_rows_loaded_total",
			Help:      "TEOTIL result rows kept after catchment filtering, by model version.",
		}, []string{"model"}),
		EmptyYearWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vannrapport",
			Name:      "empty_year_warnings_total",
			Help:      "Year loads that matched no rows for the requested catchment.",
		}, []string{"model"}),
		RowsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vannrapport",
			Name:      "rows_exported_total",
			Help:      "Aggregated rows published to the sink topic.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vannrapport",
			Name:      "export_errors_total",
			Help:      "Export runs that failed.",
		}),
		ExportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vannrapport",
			Name:      "export_duration_seconds",
			Help:      "Duration of a complete load-aggregate-publish run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		ExportRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vannrapport",
			Name:      "export_running",
			Help:      "1 while an export run is active, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.QualityFetches,
		m.QualityFetchSeconds,
		m.ModelRowsLoaded,
		m.EmptyYearWarnings,
		m.RowsExported,
		m.ExportErrors,
		m.ExportDuration,
		m.ExportRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QualityFetches:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vannrapport", Name: "quality_fetches_total"}, []string{"element", "outcome"}),
		QualityFetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "vannrapport", Name: "quality_fetch_duration_seconds"}),
		ModelRowsLoaded:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vannrapport", Name: "model_rows_loaded_total"}, []string{"model"}),
		EmptyYearWarnings:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "vannrapport", Name: "empty_year_warnings_total"}, []string{"model"}),
		RowsExported:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "vannrapport", Name: "rows_exported_total"}),
		ExportErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "vannrapport", Name: "export_errors_total"}),
		ExportDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "vannrapport", Name: "export_duration_seconds"}),
		ExportRunning:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "vannrapport", Name: "export_running"}),
	}
}
