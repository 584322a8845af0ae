package soa

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting container metrics.
// Implement this interface to integrate with monitoring systems; package
// soaprom provides a Prometheus implementation.
//
// Collectors are called synchronously from the container's own goroutine.
type MetricsCollector interface {
	// RecordAdd is called after each Add/AddWithDefaultValues.
	// count is the number of records written, recycled how many of them
	// reused a freed index, err is nil if the whole batch was written.
	RecordAdd(count, recycled int, err error)

	// RecordPush is called after each Push/PushWithDefaultValues.
	RecordPush(count int, err error)

	// RecordUpsert is called after each Upsert.
	RecordUpsert(err error)

	// RecordUpdate is called after each Update/TryUpdate.
	RecordUpdate(err error)

	// RecordDelete is called after each Delete or Pop that freed a record.
	// compacted is the number of trailing slots physically removed (0 for
	// sparse containers and for deletes that only recycle the index).
	RecordDelete(compacted int)

	// RecordClear is called after each Clear.
	RecordClear()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int, int, error) {}
func (NoopMetricsCollector) RecordPush(int, error)     {}
func (NoopMetricsCollector) RecordUpsert(error)        {}
func (NoopMetricsCollector) RecordUpdate(error)        {}
func (NoopMetricsCollector) RecordDelete(int)          {}
func (NoopMetricsCollector) RecordClear()              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount       atomic.Int64
	AddRecycled    atomic.Int64
	AddErrors      atomic.Int64
	PushCount      atomic.Int64
	PushErrors     atomic.Int64
	UpsertCount    atomic.Int64
	UpsertErrors   atomic.Int64
	UpdateCount    atomic.Int64
	UpdateErrors   atomic.Int64
	DeleteCount    atomic.Int64
	CompactedSlots atomic.Int64
	ClearCount     atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(count, recycled int, err error) {
	b.AddCount.Add(int64(count))
	b.AddRecycled.Add(int64(recycled))
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordPush implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPush(count int, err error) {
	b.PushCount.Add(int64(count))
	if err != nil {
		b.PushErrors.Add(1)
	}
}

// RecordUpsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpsert(err error) {
	b.UpsertCount.Add(1)
	if err != nil {
		b.UpsertErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(compacted int) {
	b.DeleteCount.Add(1)
	b.CompactedSlots.Add(int64(compacted))
}

// RecordClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClear() {
	b.ClearCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:       b.AddCount.Load(),
		AddRecycled:    b.AddRecycled.Load(),
		AddErrors:      b.AddErrors.Load(),
		PushCount:      b.PushCount.Load(),
		PushErrors:     b.PushErrors.Load(),
		UpsertCount:    b.UpsertCount.Load(),
		UpsertErrors:   b.UpsertErrors.Load(),
		UpdateCount:    b.UpdateCount.Load(),
		UpdateErrors:   b.UpdateErrors.Load(),
		DeleteCount:    b.DeleteCount.Load(),
		CompactedSlots: b.CompactedSlots.Load(),
		ClearCount:     b.ClearCount.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount       int64
	AddRecycled    int64
	AddErrors      int64
	PushCount      int64
	PushErrors     int64
	UpsertCount    int64
	UpsertErrors   int64
	UpdateCount    int64
	UpdateErrors   int64
	DeleteCount    int64
	CompactedSlots int64
	ClearCount     int64
}
