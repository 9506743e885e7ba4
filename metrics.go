package jetflow

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordReorder is called once per Reorder run.
	// events is the number of events processed, duration the total time
	// taken, err is nil if successful.
	RecordReorder(events int, duration time.Duration, err error)

	// RecordChunk is called after each chunk completes.
	RecordChunk(events int, duration time.Duration)

	// RecordClustering is called after each event on the clustering path.
	// jets is the number of jets the event produced.
	RecordClustering(jets int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordReorder(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordChunk(int, time.Duration)          {}
func (NoopMetricsCollector) RecordClustering(int)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
// Safe for concurrent use.
type BasicMetricsCollector struct {
	ReorderCount      atomic.Int64
	ReorderErrors     atomic.Int64
	ReorderEvents     atomic.Int64
	ReorderTotalNanos atomic.Int64
	ChunkCount        atomic.Int64
	ChunkTotalNanos   atomic.Int64
	ClusteredEvents   atomic.Int64
	JetsProduced      atomic.Int64
}

// RecordReorder implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReorder(events int, duration time.Duration, err error) {
	b.ReorderCount.Add(1)
	b.ReorderEvents.Add(int64(events))
	b.ReorderTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReorderErrors.Add(1)
	}
}

// RecordChunk implements MetricsCollector.
func (b *BasicMetricsCollector) RecordChunk(events int, duration time.Duration) {
	b.ChunkCount.Add(1)
	b.ChunkTotalNanos.Add(duration.Nanoseconds())
}

// RecordClustering implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClustering(jets int) {
	b.ClusteredEvents.Add(1)
	b.JetsProduced.Add(int64(jets))
}
