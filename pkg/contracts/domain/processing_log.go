package domain

import (
	"fmt"
)

// Severity classifies a processing log entry
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// LogEntry is one processing log line
type LogEntry struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String renders the entry the way it appears in the log artifact
func (e LogEntry) String() string {
	return fmt.Sprintf("%s: %s", e.Severity, e.Message)
}

// ProcessingLog is the append-only record of what happened to the inputs
// during a run. It is passed explicitly from stage to stage.
type ProcessingLog struct {
	Entries []LogEntry `json:"entries"`
}

// Add appends an entry with a formatted message
func (l *ProcessingLog) Add(severity Severity, format string, args ...any) {
	l.Entries = append(l.Entries, LogEntry{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Info appends an INFO entry
func (l *ProcessingLog) Info(format string, args ...any) {
	l.Add(SeverityInfo, format, args...)
}

// Warn appends a WARNING entry
func (l *ProcessingLog) Warn(format string, args ...any) {
	l.Add(SeverityWarning, format, args...)
}

// Error appends an ERROR entry
func (l *ProcessingLog) Error(format string, args ...any) {
	l.Add(SeverityError, format, args...)
}

// Len returns the number of entries
func (l *ProcessingLog) Len() int {
	return len(l.Entries)
}

// Count returns the number of entries with the given severity
func (l *ProcessingLog) Count(severity Severity) int {
	n := 0
	for _, e := range l.Entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}

// Lines renders every entry in encounter order
func (l *ProcessingLog) Lines() []string {
	lines := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		lines[i] = e.String()
	}
	return lines
}
