package infrastructure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"

	"energyreport/internal/config"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	cfg.Observability.Dir = t.TempDir()
	return cfg.Paths()
}

// TestNoopTelemetry verifies disabled telemetry records nothing and writes nothing
func TestNoopTelemetry(t *testing.T) {
	paths := testPaths(t)

	tel, err := InitializeTelemetry(config.ObservabilityConfig{}, paths, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.Tracer)
	require.NotNil(t, tel.Metrics)
	assert.Nil(t, tel.Registry())

	ctx, span := tel.Tracer.Start(context.Background(), StageLoad)
	assert.False(t, span.IsRecording())
	tel.Metrics.RecordsLoaded.Add(ctx, 3)
	span.End()

	require.NoError(t, tel.Flush(ctx))
	assert.NoFileExists(t, paths.MetricsFile)
	assert.NoFileExists(t, paths.TraceFile)
}

// TestTelemetryWritesFiles tests span and metric export to their files
func TestTelemetryWritesFiles(t *testing.T) {
	paths := testPaths(t)

	tel, err := InitializeTelemetry(config.ObservabilityConfig{
		MetricsEnabled: true,
		TracingEnabled: true,
	}, paths, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.Registry())

	ctx, span := tel.Tracer.Start(context.Background(), StageLoad)
	assert.True(t, span.IsRecording())
	assert.NotEmpty(t, TraceIDFromContext(ctx))

	SetSpanAttributes(ctx, attribute.Int("files_loaded", 2))
	RecordError(ctx, errors.New("boom"))

	tel.Metrics.RecordsLoaded.Add(ctx, 5)
	tel.Metrics.Groups.Record(ctx, 2)
	tel.Metrics.ObserveStage(ctx, StageLoad, 20*time.Millisecond)
	tel.Metrics.RecordArtifact(ctx, "summary_csv")
	tel.Metrics.RecordRun(ctx, "ok")
	span.End()

	require.NoError(t, tel.Flush(context.Background()))

	trace, err := os.ReadFile(paths.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(trace), `"Name": "load"`)
	assert.Contains(t, string(trace), "files_loaded")
	assert.Contains(t, string(trace), "boom")

	metrics, err := os.ReadFile(paths.MetricsFile)
	require.NoError(t, err)
	text := string(metrics)

	assert.Regexp(t, regexp.MustCompile(`energyreport_records_loaded_total(\{[^}]*\})? 5\n`), text)
	assert.Regexp(t, regexp.MustCompile(`energyreport_groups(\{[^}]*\})? 2\n`), text)
	assert.Regexp(t, regexp.MustCompile(`energyreport_stage_duration_seconds_count\{[^}]*stage="load"[^}]*\} 1\n`), text)
	assert.Regexp(t, regexp.MustCompile(`energyreport_artifacts_written_total\{[^}]*artifact="summary_csv"[^}]*\} 1\n`), text)
	assert.Regexp(t, regexp.MustCompile(`energyreport_runs_total\{[^}]*outcome="ok"[^}]*\} 1\n`), text)

	// A second flush is a no-op
	require.NoError(t, tel.Flush(context.Background()))
}

func TestTelemetryFlushUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	paths := &config.Paths{
		MetricsFile: filepath.Join(blocker, "metrics.prom"),
		TraceFile:   filepath.Join(blocker, "trace.json"),
	}

	tel, err := InitializeTelemetry(config.ObservabilityConfig{MetricsEnabled: true, TracingEnabled: true}, paths, nil)
	require.NoError(t, err)

	_, span := tel.Tracer.Start(context.Background(), StageReport)
	span.End()

	err = tel.Flush(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write trace file")
	assert.Contains(t, err.Error(), "write metrics file")
}

func TestRuntimeMetricsCollect(t *testing.T) {
	paths := testPaths(t)

	tel, err := InitializeTelemetry(config.ObservabilityConfig{MetricsEnabled: true}, paths, nil)
	require.NoError(t, err)

	stats := tel.Runtime.Collect(context.Background(), time.Now().Add(-time.Second))
	assert.Greater(t, stats.Goroutines, int64(0))
	assert.Greater(t, stats.TotalAlloc, int64(0))
	assert.GreaterOrEqual(t, stats.Elapsed, time.Second)

	require.NoError(t, tel.Flush(context.Background()))

	metrics, err := os.ReadFile(paths.MetricsFile)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`energyreport_runtime_goroutines(\{[^}]*\})? \d+\n`), string(metrics))
	assert.Contains(t, string(metrics), "energyreport_run_duration_seconds")
}

func TestNoopRuntimeMetrics(t *testing.T) {
	stats := NoopTelemetry().Runtime.Collect(context.Background(), time.Now())
	assert.Greater(t, stats.Goroutines, int64(0))
}
