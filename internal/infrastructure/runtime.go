package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics snapshots Go runtime resource usage at the end of a run
type RuntimeMetrics struct {
	goroutines metric.Int64Gauge
	heapAlloc  metric.Int64Gauge
	totalAlloc metric.Int64Gauge
	gcCount    metric.Int64Gauge
	runTime    metric.Float64Gauge
}

// RuntimeStats holds one snapshot
type RuntimeStats struct {
	Goroutines int64
	HeapAlloc  int64
	TotalAlloc int64
	GCCount    uint32
	Elapsed    time.Duration
}

// NewRuntimeMetrics creates the runtime gauges on meter
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	var (
		m   RuntimeMetrics
		err error
	)

	if m.goroutines, err = meter.Int64Gauge("runtime_goroutines",
		metric.WithDescription("Number of goroutines at the end of the run")); err != nil {
		return nil, err
	}
	if m.heapAlloc, err = meter.Int64Gauge("runtime_heap_alloc",
		metric.WithDescription("Heap bytes in use at the end of the run"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if m.totalAlloc, err = meter.Int64Gauge("runtime_total_alloc",
		metric.WithDescription("Cumulative heap bytes allocated"),
		metric.WithUnit("By")); err != nil {
		return nil, err
	}
	if m.gcCount, err = meter.Int64Gauge("runtime_gc_cycles",
		metric.WithDescription("Completed garbage collection cycles")); err != nil {
		return nil, err
	}
	if m.runTime, err = meter.Float64Gauge("run_duration",
		metric.WithDescription("Wall time of the run"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}

	return &m, nil
}

// Collect reads the runtime statistics and records them
func (m *RuntimeMetrics) Collect(ctx context.Context, startTime time.Time) RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := RuntimeStats{
		Goroutines: int64(runtime.NumGoroutine()),
		HeapAlloc:  int64(memStats.HeapAlloc),
		TotalAlloc: int64(memStats.TotalAlloc),
		GCCount:    memStats.NumGC,
		Elapsed:    time.Since(startTime),
	}

	m.goroutines.Record(ctx, stats.Goroutines)
	m.heapAlloc.Record(ctx, stats.HeapAlloc)
	m.totalAlloc.Record(ctx, stats.TotalAlloc)
	m.gcCount.Record(ctx, int64(stats.GCCount))
	m.runTime.Record(ctx, stats.Elapsed.Seconds())
	return stats
}
