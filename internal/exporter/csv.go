package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"

	"energyreport/internal/files"
)

// utf8BOM helps Excel recognize UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	files  *files.Manager
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(manager *files.Manager, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{files: manager, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// EncodeCSV renders headers and records as CSV bytes
func EncodeCSV(options WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if options.BOMPrefix {
		buf.Write(utf8BOM)
	}

	writer := csv.NewWriter(&buf)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes data to a CSV file with the given options, replacing any
// previous content
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	data, err := EncodeCSV(options)
	if err != nil {
		return err
	}
	return w.files.WriteFile(filePath, data)
}
