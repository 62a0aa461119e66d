// Package metrics exposes Prometheus instrumentation for the ingestion
// pipeline. It implements dataset.Observer.
package metrics

import (
	"time"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for upload and retention activity.
type Metrics struct {
	uploads        prometheus.Counter
	uploadFailures *prometheus.CounterVec
	evictions      prometheus.Counter
	deletions      prometheus.Counter
	ingestDuration prometheus.Histogram
}

// New creates the collector set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "equipview_uploads_total",
			Help: "Datasets successfully ingested.",
		}),
		uploadFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "equipview_upload_failures_total",
			Help: "Uploads rejected by schema validation, by failure kind.",
		}, []string{"kind"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "equipview_evictions_total",
			Help: "Datasets deleted automatically by the retention window.",
		}),
		deletions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "equipview_datasets_deleted_total",
			Help: "Datasets deleted explicitly by their owner.",
		}),
		ingestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "equipview_ingest_duration_seconds",
			Help:    "Validate-aggregate-store latency per accepted upload.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}

	reg.MustRegister(m.uploads, m.uploadFailures, m.evictions, m.deletions, m.ingestDuration)
	return m
}

func (m *Metrics) UploadAccepted(elapsed time.Duration) {
	m.uploads.Inc()
	m.ingestDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) UploadRejected(kind dataset.ValidationKind) {
	m.uploadFailures.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) DatasetsEvicted(count int) {
	m.evictions.Add(float64(count))
}

func (m *Metrics) DatasetDeleted() {
	m.deletions.Inc()
}
