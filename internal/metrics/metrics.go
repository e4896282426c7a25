// Package metrics provides Prometheus metrics for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scribe"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	TranscriptsProcessed prometheus.Counter
	TranscriptsFailed    *prometheus.CounterVec
	SummariesStored      prometheus.Counter
	ContactsUpdated      prometheus.Counter
	ContactUpdatesFailed *prometheus.CounterVec
	GenerationSeconds    prometheus.Histogram
}

// Default is the process-wide metrics instance, registered once.
var Default = newMetrics()

func newMetrics() *Metrics {
	return &Metrics{
		TranscriptsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_processed_total",
			Help:      "Transcripts summarized successfully",
		}),
		TranscriptsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcripts_failed_total",
			Help:      "Transcript records that failed, by retry class",
		}, []string{"class"}),
		SummariesStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_stored_total",
			Help:      "Summary records written to the store",
		}),
		ContactsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contacts_updated_total",
			Help:      "Contacts whose attributes were pushed downstream",
		}),
		ContactUpdatesFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_updates_failed_total",
			Help:      "Attribute pushes that failed, by retry class",
		}, []string{"class"}),
		GenerationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_seconds",
			Help:      "Wall-clock duration of the summary generation stage",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
}
