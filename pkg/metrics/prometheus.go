package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	SubmissionsProcessed prometheus.Counter
	DocumentsRendered    *prometheus.CounterVec
	ArtifactsUploaded    prometheus.Counter
	CompletionCalls      prometheus.Counter
	RenderTime           prometheus.Histogram
	SubmissionTime       prometheus.Histogram
	ErrorsCount          *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SubmissionsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_processed_total",
			Help:      "The total number of processed form submissions",
		}),
		DocumentsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_rendered_total",
			Help:      "The total number of rendered documents",
		}, []string{"kind", "format"}),
		ArtifactsUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_uploaded_total",
			Help:      "The total number of artifacts uploaded to storage",
		}),
		CompletionCalls: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_calls_total",
			Help:      "The total number of text completion calls",
		}),
		RenderTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_render_time_seconds",
			Help:      "Time taken to render a single document",
			Buckets:   prometheus.DefBuckets,
		}),
		SubmissionTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_processing_time_seconds",
			Help:      "Time taken to process a full submission",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
