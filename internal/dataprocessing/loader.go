package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"energyreport/internal/config"
	apperrors "energyreport/internal/errors"
	"energyreport/internal/files"
	"energyreport/internal/infrastructure"
	"energyreport/internal/validation"
	"energyreport/pkg/contracts/domain"
)

// LoadResult is the loader's output. The table may be empty; input problems
// are reported through Log, never as an error.
type LoadResult struct {
	Table       domain.UnifiedTable
	Log         domain.ProcessingLog
	FilesFound  int
	FilesLoaded int
	RowsSkipped int
}

// Loader reads every input file in a directory into one UnifiedTable
type Loader struct {
	cfg       config.InputConfig
	discovery *files.Discovery
	validator *validation.FileValidator
	logger    *slog.Logger
}

// NewLoader creates a loader for the given input configuration
func NewLoader(cfg config.InputConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		cfg:       cfg,
		discovery: files.NewDiscovery(""),
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// Load enumerates candidate files by extension in name order and reads each
// one. Files that cannot be read or lack a required column are skipped with
// a log entry; the remaining files still contribute.
func (l *Loader) Load(ctx context.Context) LoadResult {
	var result LoadResult
	dir := l.cfg.Dir

	if err := l.validator.ValidateInputDirectory(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Log.Error("No input files found in %s. Cannot proceed.", dir)
		} else {
			result.Log.Error("Cannot read input directory %s: %v. Cannot proceed.", dir, err)
		}
		return result
	}

	candidates, err := l.discovery.FindByExtensions(dir, l.cfg.Extensions)
	if err != nil {
		result.Log.Error("Cannot read input directory %s: %v. Cannot proceed.", dir, err)
		return result
	}

	var inputs []files.FileInfo
	for _, f := range candidates {
		if validation.IsTemporaryFile(f.Name) {
			l.logger.DebugContext(ctx, "ignoring lock file", slog.String("file", f.Name))
			continue
		}
		inputs = append(inputs, f)
	}

	result.FilesFound = len(inputs)
	if len(inputs) == 0 {
		result.Log.Error("No input files found in %s. Cannot proceed.", dir)
		return result
	}

	l.logger.InfoContext(ctx, "loading input files",
		slog.String("dir", dir),
		slog.Int("files_found", len(inputs)))

	columns := newColumnSet()
	for _, f := range inputs {
		records, skipped, err := l.loadFile(f, columns, &result.Log)
		if err != nil {
			infrastructure.WithError(l.logger, err).WarnContext(ctx, "input file skipped",
				slog.String("file", f.Name))
			continue
		}

		if skipped > 0 {
			result.Log.Warn("File %s: %d malformed row(s) skipped.", f.Name, skipped)
			result.RowsSkipped += skipped
		}
		result.Log.Info("Successfully read %s.", f.Name)

		result.Table.Records = append(result.Table.Records, records...)
		result.FilesLoaded++

		l.logger.DebugContext(ctx, "input file loaded",
			slog.String("file", f.Name),
			slog.Int("records", len(records)))
	}
	result.Table.Columns = columns.names

	l.logger.InfoContext(ctx, "input files loaded",
		slog.Int("files_loaded", result.FilesLoaded),
		slog.Int("files_skipped", result.FilesFound-result.FilesLoaded),
		slog.Int("records", result.Table.Len()))

	return result
}

// loadFile reads one file and converts its rows to raw records. A failure
// is appended to log and returned as an input AppError.
func (l *Loader) loadFile(f files.FileInfo, columns *columnSet, log *domain.ProcessingLog) ([]domain.RawRecord, int, error) {
	if err := l.validator.ValidateInputFile(f.Path, l.cfg.Extensions); err != nil {
		log.Error("An unexpected error occurred reading %s: %v", f.Name, err)
		return nil, 0, apperrors.NewInputError(f.Name, "file is not readable", err)
	}

	table, err := ParseFile(f.Path)
	if errors.Is(err, ErrEmptyFile) {
		log.Warn("File %s skipped. File is empty.", f.Name)
		return nil, 0, apperrors.NewInputError(f.Name, "file is empty", err)
	}
	if err != nil {
		log.Error("An unexpected error occurred reading %s: %v", f.Name, err)
		return nil, 0, apperrors.NewInputError(f.Name, "failed to parse file", err)
	}

	tsIdx := table.ColumnIndex(l.cfg.TimestampColumn)
	valIdx := table.ColumnIndex(l.cfg.ValueColumn)
	if tsIdx < 0 || valIdx < 0 {
		log.Warn("File %s skipped. Missing '%s' or '%s' column.", f.Name, l.cfg.TimestampColumn, l.cfg.ValueColumn)
		return nil, 0, apperrors.NewInputError(f.Name, "missing required column", nil).
			WithContext("timestamp_column", l.cfg.TimestampColumn).
			WithContext("value_column", l.cfg.ValueColumn)
	}

	var extras []int
	for i, name := range table.Header {
		if i == tsIdx || i == valIdx || name == "" {
			continue
		}
		extras = append(extras, i)
		columns.add(name)
	}

	group := f.Stem()
	records := make([]domain.RawRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec := domain.RawRecord{
			Source:    group,
			Group:     group,
			Timestamp: row[tsIdx],
			Value:     row[valIdx],
		}
		if len(extras) > 0 {
			rec.Fields = make(map[string]string, len(extras))
			for _, i := range extras {
				rec.Fields[table.Header[i]] = row[i]
			}
		}
		records = append(records, rec)
	}

	return records, table.Skipped, nil
}

// columnSet keeps extra column names in first-appearance order
type columnSet struct {
	names []string
	seen  map[string]bool
}

func newColumnSet() *columnSet {
	return &columnSet{seen: make(map[string]bool)}
}

func (c *columnSet) add(name string) {
	if name == "" || c.seen[name] {
		return
	}
	c.seen[name] = true
	c.names = append(c.names, name)
}
