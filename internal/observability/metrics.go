package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// register service.
type Metrics struct {
	Assessments       prometheus.Counter
	AssessmentsFailed prometheus.Counter

	ReadingsAppended prometheus.Counter
	AppendErrors     prometheus.Counter
	HistoryReads     prometheus.Counter
	AppendDuration   prometheus.Histogram

	ReadingsPublished prometheus.Counter
	PublishErrors     prometheus.Counter
	PublishEnabled    prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Assessments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jacketload",
			Name:      "assessments_total",
			Help:      "Total distribution assessments computed.",
		}),
		AssessmentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jacketload",
			Name:      "assessments_failed_total",
			Help:      "Assessments with at least one leg below its minimum target.",
		}),
		ReadingsAppended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jacketload",
			Name:      "readings_appended_total",
			Help:      "Readings durably appended to the pressure register.",
		}),
		AppendErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jacketload",
			Name:      "append_errors_total",
			Help:      "Failed register append attempts.",
		}),
		HistoryReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jacketload",
			Name:      "history_reads_total",
			Help:      "Full register history reads.",
		}),
		AppendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "jacketload",
			Name:      "append_duration_seconds",
			Help:      "Duration of one lock-append-sync cycle on the register file.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ReadingsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jacketload",
			Name:      "readings_published_total",
			Help:      "Saved readings exported to the Kafka readings topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jacketload",
			Name:      "publish_errors_total",
			Help:      "Failed Kafka exports (the save itself still succeeds).",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "jacketload",
			Name:      "kafka_publish_enabled",
			Help:      "1 when Kafka export of saved readings is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Assessments,
		m.AssessmentsFailed,
		m.ReadingsAppended,
		m.AppendErrors,
		m.HistoryReads,
		m.AppendDuration,
		m.ReadingsPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Assessments:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jacketload", Name: "assessments_total"}),
		AssessmentsFailed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jacketload", Name: "assessments_failed_total"}),
		ReadingsAppended:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jacketload", Name: "readings_appended_total"}),
		AppendErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jacketload", Name: "append_errors_total"}),
		HistoryReads:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jacketload", Name: "history_reads_total"}),
		AppendDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "jacketload", Name: "append_duration_seconds"}),
		ReadingsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jacketload", Name: "readings_published_total"}),
		PublishErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "jacketload", Name: "publish_errors_total"}),
		PublishEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "jacketload", Name: "kafka_publish_enabled"}),
	}
}
