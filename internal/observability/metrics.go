package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, gauges, and histograms for the
// smoothing pipeline. The run is a batch job, so metrics are pushed to a
// gateway after completion rather than scraped.
type Metrics struct {
	RowsRead        prometheus.Counter
	RowsSkipped     prometheus.Counter
	RowsWritten     prometheus.Counter
	WeeksAggregated prometheus.Counter

	GroupsSmoothed      prometheus.Counter
	GroupsPassedThrough prometheus.Counter
	PredictionsClamped  prometheus.Counter

	StageDuration *prometheus.HistogramVec // label: stage={extract,transform,load}
	LastSuccess   prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsRead,
		m.RowsSkipped,
		m.RowsWritten,
		m.WeeksAggregated,
		m.GroupsSmoothed,
		m.GroupsPassedThrough,
		m.PredictionsClamped,
		m.StageDuration,
		m.LastSuccess,
	)
	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flu_etl",
			Name:      "rows_read_total",
			Help:      "Raw observation rows read from the input snapshot.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flu_etl",
			Name:      "rows_skipped_total",
			Help:      "Raw rows dropped during normalization (missing keys, bad dates).",
		}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flu_etl",
			Name:      "rows_written_total",
			Help:      "Smoothed rows written to the output snapshot.",
		}),
		WeeksAggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flu_etl",
			Name:      "weeks_aggregated_total",
			Help:      "Unique (region, level, epi-year, epi-week) cells after aggregation.",
		}),
		GroupsSmoothed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flu_etl",
			Name:      "groups_smoothed_total",
			Help:      "Season groups fitted with both smoothers.",
		}),
		GroupsPassedThrough: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flu_etl",
			Name:      "groups_passed_through_total",
			Help:      "Season groups below the fitting threshold, emitted unsmoothed.",
		}),
		PredictionsClamped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flu_etl",
			Name:      "predictions_clamped_total",
			Help:      "Negative smoother predictions clamped to zero.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flu_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flu_etl",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful pipeline run.",
		}),
	}
}
