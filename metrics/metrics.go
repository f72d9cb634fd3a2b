// Package metrics provides Prometheus observability metrics for the workforce dashboard.
// It includes Critical and Important metrics for data quality and operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// Outcome labels for IngestionsTotal.
const (
	OutcomeLoaded = "loaded"
	OutcomeFailed = "failed"
	OutcomeStale  = "stale"
)

// Kind labels.
const (
	KindSchedule     = "schedule"
	KindProductivity = "productivity"
)

// =============================================================================
// CRITICAL METRICS - Data Quality Visibility
// =============================================================================

// IngestionsTotal counts upload attempts by dataset kind and outcome.
var IngestionsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ingest",
	Name:      "uploads_total",
	Help:      "Total uploads processed by dataset kind and outcome",
}, []string{"kind", "outcome"})

// RowsDroppedTotal counts rows skipped during mapping. A rising rate usually
// means an export changed its headers.
var RowsDroppedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ingest",
	Name:      "rows_dropped_total",
	Help:      "Rows skipped during header mapping by dataset kind",
}, []string{"kind"})

// DateNormalizationFailures counts date cells kept verbatim because no accepted format matched.
var DateNormalizationFailures = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "dates",
	Name:      "normalization_failures_total",
	Help:      "Date cells that could not be normalized to MM-DD-YYYY",
})

// CurrentRecords tracks the size of the dataset currently served.
var CurrentRecords = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "store",
	Name:      "records",
	Help:      "Records in the currently loaded dataset by kind",
}, []string{"kind"})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// RowsLoadedTotal counts rows that made it into a committed dataset.
var RowsLoadedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ingest",
	Name:      "rows_loaded_total",
	Help:      "Rows loaded into committed datasets by kind",
}, []string{"kind"})

// DecodeDurationSeconds tracks time to decode an uploaded file.
var DecodeDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "parser",
	Name:      "duration_seconds",
	Help:      "Time taken to decode an uploaded spreadsheet",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
}, []string{"format"})

// AggregateDurationSeconds tracks time to aggregate productivity logs.
var AggregateDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "productivity",
	Name:      "aggregate_duration_seconds",
	Help:      "Time taken to aggregate call and care logs",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// =============================================================================
// Helper Functions
// =============================================================================

// RecordIngestion updates the counters for one finished upload.
func RecordIngestion(kind, outcome string, loaded, dropped int) {
	IngestionsTotal.WithLabelValues(kind, outcome).Inc()
	if outcome != OutcomeLoaded {
		return
	}
	RowsLoadedTotal.WithLabelValues(kind).Add(float64(loaded))
	RowsDroppedTotal.WithLabelValues(kind).Add(float64(dropped))
	CurrentRecords.WithLabelValues(kind).Set(float64(loaded))
}
