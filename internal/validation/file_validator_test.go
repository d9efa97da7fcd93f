package validation

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "energyreport/internal/errors"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		wantNotExist  bool
		errorContains string
	}{
		{
			name: "valid directory with files",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("test"), 0644))
				return dir
			},
		},
		{
			name: "valid empty directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing")
			},
			wantErr:       true,
			wantNotExist:  true,
			errorContains: "does not exist",
		},
		{
			name: "path is file not directory",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "test.txt")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())

			err := validator.ValidateInputDirectory(tt.setupFunc(t))

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Equal(t, tt.wantNotExist, errors.Is(err, os.ErrNotExist))
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	validator := NewFileValidator(nil)

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, validator.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)
	assert.NoFileExists(t, filepath.Join(dir, ".write_test"))

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	err := validator.ValidateOutputDirectory(filepath.Join(blocker, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
}

func TestFileValidator_ValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		return path
	}

	exts := []string{".csv", ".xlsx"}
	validator := NewFileValidator(nil)

	tests := []struct {
		name           string
		path           string
		errorContains  string
		wantValidation bool
	}{
		{name: "csv", path: write("a.csv")},
		{name: "upper case xlsx", path: write("b.XLSX")},
		{name: "unsupported extension", path: write("c.txt"), errorContains: "unsupported extension", wantValidation: true},
		{name: "lock file", path: write("~$d.xlsx"), errorContains: "temporary lock file", wantValidation: true},
		{name: "missing", path: filepath.Join(dir, "missing.csv"), errorContains: "does not exist"},
		{name: "directory", path: dir, errorContains: "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateInputFile(tt.path, exts)
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Equal(t, tt.wantValidation, apperrors.IsType(err, apperrors.ErrTypeValidation))
		})
	}
}

func TestIsTemporaryFile(t *testing.T) {
	assert.True(t, IsTemporaryFile("/data/~$report.xlsx"))
	assert.False(t, IsTemporaryFile("/data/report.xlsx"))
}
