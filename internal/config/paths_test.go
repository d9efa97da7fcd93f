package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPaths(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = "out"

	paths := cfg.Paths()

	assert.Equal(t, "data", paths.InputDir)
	assert.Equal(t, "out", paths.OutputDir)
	assert.Equal(t, filepath.Join("out", "charts"), paths.ChartsDir)
	assert.Equal(t, filepath.Join("out", "cleaned_energy_data.csv"), paths.CleanedCSV)
	assert.Equal(t, filepath.Join("out", "building_summary.csv"), paths.SummaryCSV)
	assert.Equal(t, filepath.Join("out", "summary.txt"), paths.ReportTXT)
	assert.Equal(t, filepath.Join("out", "processing_log.txt"), paths.ProcessingLog)
	assert.Equal(t, filepath.Join("out", "energy_summary.xlsx"), paths.Workbook)
	assert.Equal(t, "telemetry", paths.TelemetryDir)
	assert.Equal(t, filepath.Join("telemetry", "pipeline_metrics.prom"), paths.MetricsFile)
	assert.Equal(t, filepath.Join("telemetry", "trace.json"), paths.TraceFile)
	assert.Equal(t, filepath.Join("out", "charts", DailyTrendChart), paths.ChartPath(DailyTrendChart))
}

func TestConfigPathsAbsoluteAndEmpty(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "metrics.prom")

	cfg := Default()
	cfg.Output.ChartsDir = ""
	cfg.Observability.MetricsFile = abs
	cfg.Observability.Dir = ""

	paths := cfg.Paths()

	assert.Equal(t, "output", paths.ChartsDir)
	assert.Equal(t, abs, paths.MetricsFile)
	assert.Equal(t, "trace.json", paths.TraceFile)
}

func TestEnsureDirectories(t *testing.T) {
	tests := []struct {
		name       string
		withCharts bool
	}{
		{name: "output only", withCharts: false},
		{name: "output and charts", withCharts: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Output.Dir = filepath.Join(t.TempDir(), "nested", "out")

			paths := cfg.Paths()
			require.NoError(t, paths.EnsureDirectories(tt.withCharts))

			assert.DirExists(t, paths.OutputDir)
			_, err := os.Stat(paths.ChartsDir)
			assert.Equal(t, tt.withCharts, err == nil)
		})
	}
}

func TestEnsureDirectoriesBlockedByFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cfg := Default()
	cfg.Output.Dir = filepath.Join(blocker, "out")

	err := cfg.Paths().EnsureDirectories(false)
	assert.Error(t, err)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
}
