package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeInput covers a missing, unreadable or malformed input file.
	// Recovered by the loader: the file is skipped and logged.
	ErrTypeInput ErrorType = "INPUT"
	// ErrTypeDataQuality covers a record that cannot be coerced. Recovered
	// by the cleaner: the record is dropped.
	ErrTypeDataQuality ErrorType = "DATA_QUALITY"
	// ErrTypeTerminal means no data survived loading and cleaning.
	ErrTypeTerminal ErrorType = "TERMINAL"
	// ErrTypeArtifactWrite means an output artifact could not be written.
	ErrTypeArtifactWrite ErrorType = "ARTIFACT_WRITE"
	// ErrTypeValidation marks a candidate input file rejected before parsing.
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether any AppError in err's chain has the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// Helper functions for common error types

// NewInputError creates an error for a file the loader could not use
func NewInputError(file string, message string, cause error) *AppError {
	return NewAppError(ErrTypeInput, message, cause).WithContext("file", file)
}

// NewDataQualityError creates an error for a record the cleaner rejects
func NewDataQualityError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataQuality, message, cause)
}

// NewTerminalError creates the error returned when a run has no data left
func NewTerminalError(message string, cause error) *AppError {
	return NewAppError(ErrTypeTerminal, message, cause)
}

// NewArtifactWriteError creates an error for an artifact that could not be written
func NewArtifactWriteError(artifact string, cause error) *AppError {
	return NewAppError(ErrTypeArtifactWrite, fmt.Sprintf("failed to write %s", artifact), cause).
		WithContext("artifact", artifact)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
