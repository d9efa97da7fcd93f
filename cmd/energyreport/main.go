// Command energyreport runs the consumption report pipeline once.
//
// Configuration comes from defaults, an optional energyreport.yaml and
// ENERGY_* environment variables. The exit status is 0 when the report was
// written and 1 when there was no data or a fatal error occurred.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"energyreport/internal/config"
	"energyreport/internal/infrastructure"
	"energyreport/internal/pipeline"
	"energyreport/pkg/contracts"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "energyreport: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "energyreport: failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())
	logger.InfoContext(ctx, "Starting energy report",
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("input_dir", cfg.Input.Dir),
		slog.String("output_dir", cfg.Output.Dir),
		slog.String("group_by", cfg.Aggregation.GroupBy))

	tel, err := infrastructure.InitializeTelemetry(cfg.Observability, cfg.Paths(), logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize telemetry", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := tel.Flush(ctx); err != nil {
			logger.WarnContext(ctx, "Failed to flush telemetry", slog.String("error", err.Error()))
		}
	}()

	p, err := pipeline.New(cfg, logger, pipeline.WithTelemetry(tel))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build pipeline", slog.String("error", err.Error()))
		return 1
	}

	result, err := p.Run(ctx)
	if errors.Is(err, pipeline.ErrNoData) {
		logger.ErrorContext(ctx, "No data to report, see the processing log",
			slog.String("processing_log", cfg.Paths().ProcessingLog))
		return 1
	}
	if err != nil {
		logger.ErrorContext(ctx, "Energy report failed", slog.String("error", err.Error()))
		return 1
	}

	logger.InfoContext(ctx, "Energy report complete",
		slog.Int("files_loaded", result.FilesLoaded),
		slog.Int("records", result.RecordsKept),
		slog.Int("groups", result.Groups),
		slog.Int("artifacts", len(result.Artifacts)))
	return 0
}
