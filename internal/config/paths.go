package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Chart file names written under Paths.ChartsDir
const (
	DailyTrendChart    = "daily_trend.png"
	WeeklyAverageChart = "weekly_average.png"
	HourlyPeakChart    = "hourly_peak.png"
)

// Paths contains every artifact path for one run.
// This is the single source of truth for output locations.
type Paths struct {
	InputDir  string
	OutputDir string
	ChartsDir string

	// Artifacts
	CleanedCSV    string
	SummaryCSV    string
	ReportTXT     string
	ProcessingLog string
	Workbook      string

	// Observability
	TelemetryDir string
	MetricsFile  string
	TraceFile    string
}

// Paths resolves artifact paths from the output configuration. Relative
// artifact names are placed in the output directory; absolute ones are kept.
// Telemetry files resolve against the observability directory, which falls
// back to the working directory when unset.
func (c *Config) Paths() *Paths {
	out := c.Output.Dir
	chartsDir := c.Output.ChartsDir
	if chartsDir == "" {
		chartsDir = out
	}
	telemetry := c.Observability.Dir

	return &Paths{
		InputDir:      c.Input.Dir,
		OutputDir:     out,
		ChartsDir:     resolve(out, chartsDir),
		CleanedCSV:    resolve(out, c.Output.CleanedFile),
		SummaryCSV:    resolve(out, c.Output.SummaryFile),
		ReportTXT:     resolve(out, c.Output.ReportFile),
		ProcessingLog: resolve(out, c.Output.LogFile),
		Workbook:      resolve(out, c.Output.WorkbookFile),
		TelemetryDir:  telemetry,
		MetricsFile:   resolve(telemetry, c.Observability.MetricsFile),
		TraceFile:     resolve(telemetry, c.Observability.TraceFile),
	}
}

func resolve(dir, name string) string {
	if name == "" || filepath.IsAbs(name) || name == dir {
		return name
	}
	return filepath.Join(dir, name)
}

// ChartPath returns the path for a named chart image
func (p *Paths) ChartPath(name string) string {
	return filepath.Join(p.ChartsDir, name)
}

// EnsureDirectories creates the output directory, and the charts directory
// when withCharts is set, if they don't exist
func (p *Paths) EnsureDirectories(withCharts bool) error {
	directories := []string{p.OutputDir}
	if withCharts {
		directories = append(directories, p.ChartsDir)
	}

	logger := slog.Default()

	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		logger.Debug("Ensured directory exists",
			slog.String("directory", dir))
	}

	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
