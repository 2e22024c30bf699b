package knn

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordQuery is called after each query.
	// neighbors is the number of selected neighbors (>= k on success),
	// err is nil if successful.
	RecordQuery(mode Mode, k, neighbors int, duration time.Duration, err error)

	// RecordBatch is called after each batch prediction.
	// count is the number of queries attempted, failed is the number that failed.
	RecordBatch(count, failed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuery(Mode, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe for concurrent use.
type BasicMetricsCollector struct {
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
	NeighborsTotal  atomic.Int64
	TieExpansions   atomic.Int64
	BatchCount      atomic.Int64
	BatchItems      atomic.Int64
	BatchFailed     atomic.Int64
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ Mode, k, neighbors int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.NeighborsTotal.Add(int64(neighbors))
	if neighbors > k {
		b.TieExpansions.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count, failed int, _ time.Duration) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// AverageQueryLatency returns the mean recorded query duration.
func (b *BasicMetricsCollector) AverageQueryLatency() time.Duration {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(b.QueryTotalNanos.Load() / count)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QueryCount:     b.QueryCount.Load(),
		QueryErrors:    b.QueryErrors.Load(),
		QueryAvgNanos:  b.AverageQueryLatency().Nanoseconds(),
		NeighborsTotal: b.NeighborsTotal.Load(),
		TieExpansions:  b.TieExpansions.Load(),
		BatchCount:     b.BatchCount.Load(),
		BatchItems:     b.BatchItems.Load(),
		BatchFailed:    b.BatchFailed.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QueryCount     int64
	QueryErrors    int64
	QueryAvgNanos  int64
	NeighborsTotal int64
	TieExpansions  int64
	BatchCount     int64
	BatchItems     int64
	BatchFailed    int64
}
