package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"energyreport/internal/charts"
	"energyreport/internal/config"
	"energyreport/internal/dataprocessing"
	apperrors "energyreport/internal/errors"
	"energyreport/internal/exporter"
	"energyreport/internal/infrastructure"
	"energyreport/internal/validation"
	"energyreport/pkg/contracts/domain"
)

// ErrNoData is matched by the error of a run that had nothing to report
var ErrNoData = errors.New("no data survived loading and cleaning")

// Run outcomes recorded on the runs counter
const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

// Result describes a finished run
type Result struct {
	FilesFound    int
	FilesLoaded   int
	RecordsLoaded int
	RecordsKept   int
	Groups        int
	Artifacts     []exporter.Artifact
	Log           domain.ProcessingLog
}

// Pipeline wires the four stages for one configuration
type Pipeline struct {
	cfg        *config.Config
	loader     *dataprocessing.Loader
	cleaner    *dataprocessing.Cleaner
	aggregator *dataprocessing.Aggregator
	reporter   *exporter.Reporter
	validator  *validation.FileValidator
	telemetry  *infrastructure.Telemetry
	logger     *slog.Logger

	plotter charts.Plotter
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithPlotter replaces the chart renderer
func WithPlotter(plotter charts.Plotter) Option {
	return func(p *Pipeline) {
		p.plotter = plotter
	}
}

// WithTelemetry records spans and metrics through tel
func WithTelemetry(tel *infrastructure.Telemetry) Option {
	return func(p *Pipeline) {
		p.telemetry = tel
	}
}

// New builds a pipeline for cfg
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.telemetry == nil {
		p.telemetry = infrastructure.NoopTelemetry()
	}

	// The narrative needs daily sums and the dashboard two more rollups
	extra := []domain.SeriesKey{dataprocessing.DailySum}
	if cfg.Output.ChartsEnabled {
		extra = append(extra, dataprocessing.WeeklyMean, dataprocessing.HourlyMax)
	}
	keys, err := dataprocessing.SeriesKeys(cfg.Aggregation, extra...)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid aggregation settings", err)
	}

	p.loader = dataprocessing.NewLoader(cfg.Input, infrastructure.WithComponent(logger, "loader"))
	p.cleaner = dataprocessing.NewCleaner(cfg, infrastructure.WithComponent(logger, "cleaner"))
	p.aggregator = dataprocessing.NewAggregator(keys, infrastructure.WithComponent(logger, "aggregator"))
	p.reporter = exporter.NewReporter(cfg, p.plotter, logger)
	p.validator = validation.NewFileValidator(logger)
	return p, nil
}

// Run executes the stages in order. It returns an error matching ErrNoData
// when nothing survives the Cleaner, and an ARTIFACT_WRITE AppError when an
// artifact cannot be written.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := p.telemetry.Tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("input.dir", p.cfg.Input.Dir),
			attribute.String("output.dir", p.cfg.Output.Dir),
			attribute.String("group_by", p.cfg.Aggregation.GroupBy),
		))
	defer span.End()

	p.logger.InfoContext(ctx, "pipeline run started",
		slog.String("otel_trace_id", infrastructure.TraceIDFromContext(ctx)))

	result, err := p.run(ctx)

	outcome := OutcomeOK
	switch {
	case errors.Is(err, ErrNoData):
		outcome = OutcomeNoData
	case err != nil:
		outcome = OutcomeError
	}
	p.telemetry.Metrics.RecordRun(ctx, outcome)
	p.telemetry.Runtime.Collect(ctx, start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.ErrorContext(ctx, "pipeline run failed",
			slog.String("outcome", outcome),
			slog.String("error", err.Error()))
		return result, err
	}

	span.SetStatus(codes.Ok, "")
	p.logger.InfoContext(ctx, "pipeline run complete",
		slog.Int("files_loaded", result.FilesLoaded),
		slog.Int("records_kept", result.RecordsKept),
		slog.Int("groups", result.Groups),
		slog.Int("artifacts", len(result.Artifacts)))
	return result, nil
}

func (p *Pipeline) run(ctx context.Context) (*Result, error) {
	result := &Result{}
	metrics := p.telemetry.Metrics

	if err := p.validator.ValidateOutputDirectory(p.cfg.Output.Dir); err != nil {
		return result, apperrors.NewArtifactWriteError("output directory", err)
	}

	// Load
	var loaded dataprocessing.LoadResult
	p.stage(ctx, infrastructure.StageLoad, func(ctx context.Context) error {
		loaded = p.loader.Load(ctx)
		infrastructure.SetSpanAttributes(ctx,
			attribute.Int("files.found", loaded.FilesFound),
			attribute.Int("files.loaded", loaded.FilesLoaded),
			attribute.Int("records", loaded.Table.Len()))
		return nil
	})
	result.FilesFound = loaded.FilesFound
	result.FilesLoaded = loaded.FilesLoaded
	result.RecordsLoaded = loaded.Table.Len()
	result.Log = loaded.Log

	metrics.FilesFound.Add(ctx, int64(loaded.FilesFound))
	metrics.FilesLoaded.Add(ctx, int64(loaded.FilesLoaded))
	metrics.FilesSkipped.Add(ctx, int64(loaded.FilesFound-loaded.FilesLoaded))
	metrics.RecordsLoaded.Add(ctx, int64(loaded.Table.Len()))

	if loaded.FilesLoaded == 0 {
		return result, p.terminate(ctx, result, "no input file could be loaded")
	}

	// Clean
	var cleaned domain.CleanTable
	p.stage(ctx, infrastructure.StageClean, func(ctx context.Context) error {
		var stats dataprocessing.CleanStats
		cleaned, stats = p.cleaner.Clean(ctx, loaded.Table)
		metrics.RecordsDropped.Add(ctx, int64(stats.Dropped))
		infrastructure.SetSpanAttributes(ctx,
			attribute.Int("records.kept", stats.Kept),
			attribute.Int("records.dropped", stats.Dropped))
		return nil
	})
	result.RecordsKept = cleaned.Len()

	if cleaned.IsEmpty() {
		return result, p.terminate(ctx, result, "every record was dropped by the cleaner")
	}

	// Aggregate
	var agg *domain.Aggregates
	p.stage(ctx, infrastructure.StageAggregate, func(ctx context.Context) error {
		agg = p.aggregator.Aggregate(ctx, cleaned)
		infrastructure.SetSpanAttributes(ctx,
			attribute.Int("groups", len(agg.Summaries)),
			attribute.Int("series", len(agg.Series)))
		return nil
	})
	result.Groups = len(agg.Summaries)
	metrics.Groups.Record(ctx, int64(result.Groups))

	// Report
	err := p.stage(ctx, infrastructure.StageReport, func(ctx context.Context) error {
		artifacts, err := p.reporter.Report(ctx, exporter.ReportInput{
			Table:      cleaned,
			Aggregates: agg,
			Log:        &result.Log,
		})
		result.Artifacts = artifacts
		return err
	})
	for _, a := range result.Artifacts {
		metrics.RecordArtifact(ctx, a.Name)
	}
	return result, err
}

// terminate writes the processing log alone and returns the no-data error
func (p *Pipeline) terminate(ctx context.Context, result *Result, reason string) error {
	p.logger.WarnContext(ctx, "no data to report, stopping before aggregation",
		slog.String("reason", reason))

	artifact, err := p.reporter.WriteProcessingLog(ctx, &result.Log)
	if err != nil {
		return err
	}
	result.Artifacts = append(result.Artifacts, artifact)
	p.telemetry.Metrics.RecordArtifact(ctx, artifact.Name)

	return apperrors.NewTerminalError(reason, ErrNoData)
}

// stage runs fn inside a span named after the stage and records its duration
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := p.telemetry.Tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	p.logger.DebugContext(ctx, "stage started", slog.String("stage", name))

	err := fn(ctx)
	elapsed := time.Since(start)
	p.telemetry.Metrics.ObserveStage(ctx, name, elapsed)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return fmt.Errorf("%s stage: %w", name, err)
	}

	p.logger.DebugContext(ctx, "stage finished",
		slog.String("stage", name),
		slog.Duration("duration", elapsed))
	return nil
}
