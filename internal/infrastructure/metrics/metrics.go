package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Entity labels for persistence metrics.
const (
	EntityConversation = "conversation"
	EntityMessage      = "message"
	EntityArtifact     = "artifact"
	EntityToolResult   = "tool_result"
)

// Outcome labels for persistence metrics.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeError   = "error"
)

// Conversation service metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camus",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "camus",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Saves by entity and outcome
	SavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camus",
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Total persistence writes by entity and outcome",
		},
		[]string{"entity", "outcome"},
	)

	SaveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "camus",
			Subsystem: "store",
			Name:      "save_duration_seconds",
			Help:      "Persistence write duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"entity"},
	)

	// Reconstruction duration
	ReconstructDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "camus",
			Subsystem: "store",
			Name:      "reconstruct_duration_seconds",
			Help:      "Time to rebuild a conversation view from storage",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
	)

	// View cache lookups
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camus",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Conversation view cache lookups",
		},
		[]string{"result"},
	)

	// Best-effort step failures that were swallowed
	BestEffortFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camus",
			Subsystem: "store",
			Name:      "best_effort_failures_total",
			Help:      "Secondary write steps that failed without failing the save",
		},
		[]string{"step"},
	)

	// Title generation outcomes
	TitlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camus",
			Subsystem: "title",
			Name:      "generated_total",
			Help:      "Conversation titles by source",
		},
		[]string{"source"},
	)

	// Queue depth gauge
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "camus",
			Subsystem: "worker",
			Name:      "queue_depth",
			Help:      "Background task queue depth",
		},
	)

	// Background jobs counter
	BackgroundJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "camus",
			Subsystem: "worker",
			Name:      "background_jobs_total",
			Help:      "Total background jobs processed",
		},
		[]string{"job_type", "status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordSave records a persistence write. A zero duration is not observed.
func RecordSave(entity, outcome string, durationSec float64) {
	SavesTotal.WithLabelValues(entity, outcome).Inc()
	if durationSec > 0 {
		SaveDuration.WithLabelValues(entity).Observe(durationSec)
	}
}

// RecordReconstruct records a conversation rebuild.
func RecordReconstruct(durationSec float64) {
	ReconstructDuration.Observe(durationSec)
}

// RecordCacheLookup records a view cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordBestEffortFailure counts a swallowed secondary step failure.
func RecordBestEffortFailure(step string) {
	BestEffortFailuresTotal.WithLabelValues(step).Inc()
}

// RecordTitle records how a title was produced: ai, fallback, skipped or error.
func RecordTitle(source string) {
	TitlesTotal.WithLabelValues(source).Inc()
}

// SetQueueDepth sets the current queue depth
func SetQueueDepth(depth int) {
	QueueDepth.Set(float64(depth))
}

// RecordBackgroundJob records a background job execution
func RecordBackgroundJob(jobType, status string) {
	BackgroundJobsTotal.WithLabelValues(jobType, status).Inc()
}
