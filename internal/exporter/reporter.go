package exporter

import (
	"context"
	"errors"
	"log/slog"

	"energyreport/internal/charts"
	"energyreport/internal/config"
	"energyreport/internal/dataprocessing"
	apperrors "energyreport/internal/errors"
	"energyreport/internal/files"
	"energyreport/pkg/contracts/domain"
)

// Artifact names, also used as metric labels
const (
	ArtifactChart         = "chart"
	ArtifactCleaned       = "cleaned_data"
	ArtifactSummary       = "summary"
	ArtifactReport        = "report"
	ArtifactWorkbook      = "workbook"
	ArtifactProcessingLog = "processing_log"
)

// MsgVisualsSkipped is logged when there is nothing to chart
const MsgVisualsSkipped = "Cannot generate visuals. Aggregated data is missing."

// Artifact is one file written by the reporter
type Artifact struct {
	Name string
	Path string
}

// ReportInput is everything the reporter renders
type ReportInput struct {
	Table      domain.CleanTable
	Aggregates *domain.Aggregates
	Log        *domain.ProcessingLog
}

type artifactStep struct {
	name  string
	path  string
	write func(path string) error
}

// Reporter writes the artifacts of a run into the output directory
type Reporter struct {
	cfg     *config.Config
	paths   *config.Paths
	plotter charts.Plotter
	files   *files.Manager
	csv     *CSVWriter
	logger  *slog.Logger
}

// NewReporter creates a reporter. A nil plotter renders with gonum/plot.
func NewReporter(cfg *config.Config, plotter charts.Plotter, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if plotter == nil {
		plotter = charts.NewGonumPlotter()
	}

	// Paths are already resolved against the output dir
	manager := files.NewManager("", logger)
	return &Reporter{
		cfg:     cfg,
		paths:   cfg.Paths(),
		plotter: plotter,
		files:   manager,
		csv:     NewCSVWriter(manager, logger),
		logger:  logger.With(slog.String("component", "reporter")),
	}
}

// Report writes charts, the cleaned data, the summary, the narrative, the
// workbook and finally the processing log. The first write failure stops
// the run and is returned as an ARTIFACT_WRITE error; chart failures are
// only logged.
func (r *Reporter) Report(ctx context.Context, in ReportInput) ([]Artifact, error) {
	if in.Log == nil {
		in.Log = &domain.ProcessingLog{}
	}
	if err := r.paths.EnsureDirectories(r.cfg.Output.ChartsEnabled); err != nil {
		return nil, apperrors.NewArtifactWriteError("output directory", err)
	}

	var artifacts []Artifact
	if r.cfg.Output.ChartsEnabled {
		artifacts = append(artifacts, r.renderCharts(ctx, in.Aggregates, in.Log)...)
	}

	steps := []artifactStep{
		{ArtifactCleaned, r.paths.CleanedCSV, func(p string) error { return r.writeCleaned(p, in.Table) }},
		{ArtifactSummary, r.paths.SummaryCSV, func(p string) error { return r.writeSummary(p, in.Aggregates) }},
		{ArtifactReport, r.paths.ReportTXT, func(p string) error { return r.writeNarrative(p, in.Table, in.Aggregates) }},
	}
	if r.cfg.Output.WorkbookEnabled {
		steps = append(steps, artifactStep{ArtifactWorkbook, r.paths.Workbook, func(p string) error { return r.writeWorkbook(p, in.Aggregates) }})
	}

	for _, step := range steps {
		if err := step.write(step.path); err != nil {
			r.logger.ErrorContext(ctx, "artifact write failed",
				slog.String("artifact", step.name),
				slog.String("path", step.path),
				slog.String("error", err.Error()))
			return artifacts, apperrors.NewArtifactWriteError(step.name, err).WithContext("path", step.path)
		}
		artifacts = append(artifacts, Artifact{Name: step.name, Path: step.path})
		r.logger.InfoContext(ctx, "artifact written",
			slog.String("artifact", step.name),
			slog.String("path", step.path))
	}

	logArtifact, err := r.WriteProcessingLog(ctx, in.Log)
	if err != nil {
		return artifacts, err
	}
	return append(artifacts, logArtifact), nil
}

// WriteProcessingLog writes only the processing log. It is the single
// artifact of a run that ends without data.
func (r *Reporter) WriteProcessingLog(ctx context.Context, log *domain.ProcessingLog) (Artifact, error) {
	path := r.paths.ProcessingLog
	if err := r.files.WriteFile(path, RenderProcessingLog(log)); err != nil {
		r.logger.ErrorContext(ctx, "processing log write failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return Artifact{}, apperrors.NewArtifactWriteError(ArtifactProcessingLog, err).WithContext("path", path)
	}

	r.logger.InfoContext(ctx, "artifact written",
		slog.String("artifact", ArtifactProcessingLog),
		slog.String("path", path))
	return Artifact{Name: ArtifactProcessingLog, Path: path}, nil
}

func (r *Reporter) renderCharts(ctx context.Context, agg *domain.Aggregates, log *domain.ProcessingLog) []Artifact {
	if agg.IsEmpty() {
		log.Error(MsgVisualsSkipped)
		r.logger.WarnContext(ctx, "charts skipped, no aggregates")
		return nil
	}

	var artifacts []Artifact
	names := [3]string{config.DailyTrendChart, config.WeeklyAverageChart, config.HourlyPeakChart}
	for _, panel := range charts.Dashboard(agg, r.cfg.Report.Unit, names) {
		path := r.paths.ChartPath(panel.File)
		if err := r.plotter.Render(panel.Chart, path); err != nil {
			if errors.Is(err, charts.ErrNothingToPlot) {
				log.Error("Chart %s skipped. No data to plot.", panel.File)
			} else {
				log.Error("Chart %s could not be generated: %v", panel.File, err)
			}
			r.logger.WarnContext(ctx, "chart not rendered",
				slog.String("chart", panel.File),
				slog.String("error", err.Error()))
			continue
		}
		artifacts = append(artifacts, Artifact{Name: ArtifactChart, Path: path})
	}
	return artifacts
}

func (r *Reporter) writeCleaned(path string, table domain.CleanTable) error {
	return r.csv.WriteCSV(path, CleanedTable(table, CleanedColumns{
		Timestamp: r.cfg.Input.TimestampColumn,
		Value:     r.cfg.Input.ValueColumn,
		Group:     r.cfg.Report.GroupLabel,
	}))
}

func (r *Reporter) writeSummary(path string, agg *domain.Aggregates) error {
	var summaries []domain.GroupSummary
	if agg != nil {
		summaries = agg.Summaries
	}
	return r.csv.WriteCSV(path, SummaryTable(summaries, r.cfg.Report.GroupLabel))
}

func (r *Reporter) writeNarrative(path string, table domain.CleanTable, agg *domain.Aggregates) error {
	report := BuildNarrative(table, agg, r.cfg.Report.Title, r.cfg.Report.Unit, r.cfg.Report.GroupLabel)
	text, err := report.Render()
	if err != nil {
		return err
	}
	return r.files.WriteFile(path, []byte(text))
}

func (r *Reporter) writeWorkbook(path string, agg *domain.Aggregates) error {
	var summaries []domain.GroupSummary
	if agg != nil {
		summaries = agg.Summaries
	}
	daily, _ := agg.MergedFor(dataprocessing.DailySum)

	data, err := BuildWorkbook(summaries, daily, r.cfg.Report.GroupLabel)
	if err != nil {
		return err
	}
	return r.files.WriteFile(path, data)
}
