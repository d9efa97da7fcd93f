package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"energyreport/internal/config"
)

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger is nil")
	}
	if GetLogger() != logger {
		t.Error("GetLogger did not return the initialized logger")
	}

	logger.Info("test message", "key", "value")

	// Close log file to allow reading on Windows
	CloseLogFile()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	var logEntry map[string]interface{}
	if err := json.Unmarshal(content, &logEntry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}

	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	if logEntry["key"] != "value" {
		t.Errorf("Expected key='value', got %v", logEntry["key"])
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level='INFO', got %v", logEntry["level"])
	}
	if _, ok := logEntry["source"]; !ok {
		t.Error("Expected source attribute")
	}
}

func TestTraceIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger, file, err := NewLogger(config.LoggingConfig{Level: "debug", Format: "json", Output: "console"}, &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if file != nil {
		t.Fatal("console output should not open a file")
	}

	ctx := WithTraceID(context.Background(), "run-123")
	WithComponent(logger, "loader").InfoContext(ctx, "with trace")
	logger.Info("without trace")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	var first, second map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if first["trace_id"] != "run-123" {
		t.Errorf("Expected trace_id='run-123', got %v", first["trace_id"])
	}
	if first["component"] != "loader" {
		t.Errorf("Expected component='loader', got %v", first["component"])
	}
	if _, ok := second["trace_id"]; ok {
		t.Error("trace_id should be absent without context value")
	}
}

func TestNewLoggerBothOutputs(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "both.log")

	logger, file, err := NewLogger(config.LoggingConfig{Level: "info", Format: "text", Output: "both", FilePath: logFile}, &buf)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer file.Close()

	logger.Debug("hidden")
	logger.Warn("shown", "n", 3)

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	for name, out := range map[string]string{"console": buf.String(), "file": string(content)} {
		if strings.Contains(out, "hidden") {
			t.Errorf("%s: debug record should be filtered at info level", name)
		}
		if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "msg=shown") {
			t.Errorf("%s: expected text formatted warning, got %q", name, out)
		}
	}
}

func TestNewLoggerBadFilePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := NewLogger(config.LoggingConfig{Output: "file", FilePath: filepath.Join(blocker, "app.log")}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for unusable log path")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	id := GetTraceID(ctx)
	if len(id) != 36 {
		t.Fatalf("expected uuid trace id, got %q", id)
	}

	if again := GetTraceID(EnsureTraceID(ctx)); again != id {
		t.Errorf("EnsureTraceID replaced existing id %q with %q", id, again)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	if WithError(logger, nil) != logger {
		t.Error("nil error should return the same logger")
	}

	WithError(logger, os.ErrNotExist).Info("failed")
	if !strings.Contains(buf.String(), `"error":"file does not exist"`) {
		t.Errorf("expected error attribute, got %s", buf.String())
	}
}
