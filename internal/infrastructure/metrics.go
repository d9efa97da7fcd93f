package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Pipeline stage names shared by spans and the stage duration histogram
const (
	StageLoad      = "load"
	StageClean     = "clean"
	StageAggregate = "aggregate"
	StageReport    = "report"
)

// PipelineMetrics holds the instruments recorded during a run
type PipelineMetrics struct {
	FilesFound       metric.Int64Counter
	FilesLoaded      metric.Int64Counter
	FilesSkipped     metric.Int64Counter
	RecordsLoaded    metric.Int64Counter
	RecordsDropped   metric.Int64Counter
	Groups           metric.Int64Gauge
	ArtifactsWritten metric.Int64Counter
	StageDuration    metric.Float64Histogram
	Runs             metric.Int64Counter
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	var (
		m   PipelineMetrics
		err error
	)

	if m.FilesFound, err = meter.Int64Counter("files_found",
		metric.WithDescription("Input files discovered")); err != nil {
		return nil, err
	}
	if m.FilesLoaded, err = meter.Int64Counter("files_loaded",
		metric.WithDescription("Input files read successfully")); err != nil {
		return nil, err
	}
	if m.FilesSkipped, err = meter.Int64Counter("files_skipped",
		metric.WithDescription("Input files skipped because of input errors")); err != nil {
		return nil, err
	}
	if m.RecordsLoaded, err = meter.Int64Counter("records_loaded",
		metric.WithDescription("Raw records read from input files")); err != nil {
		return nil, err
	}
	if m.RecordsDropped, err = meter.Int64Counter("records_dropped",
		metric.WithDescription("Records dropped by the cleaner")); err != nil {
		return nil, err
	}
	if m.Groups, err = meter.Int64Gauge("groups",
		metric.WithDescription("Groups in the last aggregation")); err != nil {
		return nil, err
	}
	if m.ArtifactsWritten, err = meter.Int64Counter("artifacts_written",
		metric.WithDescription("Report artifacts written")); err != nil {
		return nil, err
	}
	if m.StageDuration, err = meter.Float64Histogram("stage_duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30)); err != nil {
		return nil, err
	}
	if m.Runs, err = meter.Int64Counter("runs",
		metric.WithDescription("Pipeline runs by outcome")); err != nil {
		return nil, err
	}

	return &m, nil
}

// ObserveStage records how long a stage took
func (m *PipelineMetrics) ObserveStage(ctx context.Context, stage string, elapsed time.Duration) {
	m.StageDuration.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordArtifact counts one written artifact by kind
func (m *PipelineMetrics) RecordArtifact(ctx context.Context, artifact string) {
	m.ArtifactsWritten.Add(ctx, 1,
		metric.WithAttributes(attribute.String("artifact", artifact)))
}

// RecordRun counts a finished run with its outcome (ok, no_data, error)
func (m *PipelineMetrics) RecordRun(ctx context.Context, outcome string) {
	m.Runs.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
