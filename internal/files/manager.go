package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Manager writes files under a base directory
type Manager struct {
	baseDir string
	logger  *slog.Logger
}

// NewManager creates a new file manager rooted at baseDir
func NewManager(baseDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{baseDir: baseDir, logger: logger}
}

// WriteFile writes data to a file, creating its directory first
func (m *Manager) WriteFile(path string, data []byte) error {
	fullPath := m.resolvePath(path)

	m.logger.Debug("Writing file",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Int("size_bytes", len(data)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return os.WriteFile(fullPath, data, 0644)
}

// resolvePath resolves a path relative to the base directory
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) || m.baseDir == "" {
		return path
	}
	return filepath.Join(m.baseDir, path)
}
