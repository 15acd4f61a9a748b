// Package vmetrics instruments the batch engine with prometheus
// collectors: throughput, queue length, and flush duration. Grounded on
// the teacher's pkg/metrics/metrics.go (package-level GaugeVec/CounterVec/
// HistogramVec variables registered via prometheus.MustRegister in init,
// plus a Timer helper), generalized from node/service/task labels to
// batch-kind labels (object vs reference). Unlike the teacher, the client
// does not run its own /metrics HTTP server: an embedding application owns
// that surface and registers these collectors into its own registry via
// Collectors().
package vmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	batchThroughput = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vecta_client",
		Subsystem: "batch",
		Name:      "throughput_items_per_second",
		Help:      "Observed ingestion throughput of the most recent flush.",
	}, []string{"kind"})

	queueLength = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vecta_client",
		Subsystem: "batch",
		Name:      "queue_length",
		Help:      "Current depth of the batch engine's pending queue.",
	}, []string{"kind"})

	flushDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vecta_client",
		Subsystem: "batch",
		Name:      "flush_duration_seconds",
		Help:      "Duration of a batch flush round-trip to the server.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	recommendedSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vecta_client",
		Subsystem: "batch",
		Name:      "recommended_size",
		Help:      "Current recommended batch size from the dynamic size controller.",
	})
)

func kindLabel(isReference bool) string {
	if isReference {
		return "reference"
	}
	return "object"
}

// ObserveBatchThroughput records one flush's observed items/sec.
func ObserveBatchThroughput(itemsPerSecond float64, isReference bool) {
	batchThroughput.WithLabelValues(kindLabel(isReference)).Set(itemsPerSecond)
}

// ObserveQueueLength records the current pending queue depth.
func ObserveQueueLength(length float64, isReference bool) {
	queueLength.WithLabelValues(kindLabel(isReference)).Set(length)
}

// ObserveRecommendedSize records the size controller's latest recommendation.
func ObserveRecommendedSize(size float64) {
	recommendedSize.Set(size)
}

// Timer measures one flush's duration and records it on completion,
// mirroring the teacher's pkg/metrics Timer helper.
type Timer struct {
	start       time.Time
	isReference bool
}

// NewTimer starts timing a flush.
func NewTimer(isReference bool) *Timer {
	return &Timer{start: time.Now(), isReference: isReference}
}

// ObserveDuration records the elapsed time since NewTimer.
func (t *Timer) ObserveDuration() {
	flushDuration.WithLabelValues(kindLabel(t.isReference)).Observe(time.Since(t.start).Seconds())
}

// Collectors returns every collector this package defines, for an
// embedding application to register into its own prometheus.Registerer.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{batchThroughput, queueLength, flushDuration, recommendedSize}
}
