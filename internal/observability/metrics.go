// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Pipeline metrics
	OptimizationsTotal   *prometheus.CounterVec
	OptimizationDuration prometheus.Histogram
	StageSkipsTotal      *prometheus.CounterVec
	FallbacksTotal       *prometheus.CounterVec
	ConfidenceScore      prometheus.Histogram
	ElasticityCapsTotal  prometheus.Counter
	CaptionWarningsTotal prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Prediction metrics
	PredictionWritesTotal   prometheus.Counter
	PredictionWriteFailures prometheus.Counter

	// Batch metrics
	BatchRunsTotal      *prometheus.CounterVec
	BatchDuration       prometheus.Histogram
	LastSuccessfulBatch prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "creator_volume_lab"
	}

	return &Metrics{
		// Pipeline metrics
		OptimizationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "optimizations_total",
			Help:      "Total number of optimizations by source (pipeline/fallback) and outcome",
		}, []string{"source", "status"}),
		OptimizationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "optimization_duration_seconds",
			Help:      "End-to-end optimization duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		StageSkipsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_skips_total",
			Help:      "Total number of stage self-skips by reason",
		}, []string{"reason"}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "fallbacks_total",
			Help:      "Total number of fallbacks to base config by failing stage",
		}, []string{"stage"}),
		ConfidenceScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "confidence_score",
			Help:      "Distribution of per-optimization confidence scores",
			Buckets:   []float64{0.2, 0.4, 0.6, 0.8, 1.0},
		}),
		ElasticityCapsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "elasticity_caps_total",
			Help:      "Total number of optimizations where the revenue volume was capped",
		}),
		CaptionWarningsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "caption_warnings_total",
			Help:      "Total number of caption pool shortfall warnings emitted",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Prediction metrics
		PredictionWritesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prediction",
			Name:      "writes_total",
			Help:      "Total number of prediction rows written",
		}),
		PredictionWriteFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "prediction",
			Name:      "write_failures_total",
			Help:      "Total number of non-fatal prediction write failures",
		}),

		// Batch metrics
		BatchRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "runs_total",
			Help:      "Total number of batch re-optimization runs by status",
		}, []string{"status"}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "duration_seconds",
			Help:      "Batch run duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),
		LastSuccessfulBatch: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful batch run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordOptimization records one completed optimization.
func RecordOptimization(source, status string, durationSeconds float64) {
	DefaultMetrics.OptimizationsTotal.WithLabelValues(source, status).Inc()
	DefaultMetrics.OptimizationDuration.Observe(durationSeconds)
}

// RecordStageSkip records a stage that skipped itself for lack of data.
func RecordStageSkip(reason string) {
	DefaultMetrics.StageSkipsTotal.WithLabelValues(reason).Inc()
}

// RecordFallback records a fallback to base config caused by a stage failure.
func RecordFallback(stage string) {
	DefaultMetrics.FallbacksTotal.WithLabelValues(stage).Inc()
}

// RecordConfidence records the confidence score of one optimization.
func RecordConfidence(score float64) {
	DefaultMetrics.ConfidenceScore.Observe(score)
}

// RecordElasticityCap increments the elasticity cap counter.
func RecordElasticityCap() {
	DefaultMetrics.ElasticityCapsTotal.Inc()
}

// RecordCaptionWarnings adds emitted caption warnings to the counter.
func RecordCaptionWarnings(n int) {
	DefaultMetrics.CaptionWarningsTotal.Add(float64(n))
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordPredictionWrite records a prediction write attempt.
func RecordPredictionWrite(err error) {
	if err != nil {
		DefaultMetrics.PredictionWriteFailures.Inc()
		return
	}
	DefaultMetrics.PredictionWritesTotal.Inc()
}

// RecordBatchRun records a batch run.
func RecordBatchRun(status string, durationSeconds float64) {
	DefaultMetrics.BatchRunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.BatchDuration.Observe(durationSeconds)
}
