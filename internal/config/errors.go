package config

import (
	"errors"
	"fmt"

	"github.com/dshills/hecto/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly requested config file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrInvalidBackend indicates an unknown terminal backend name.
	ErrInvalidBackend = errors.New("invalid terminal backend")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidPlaceholder indicates a placeholder that is not a single
	// printable cell.
	ErrInvalidPlaceholder = errors.New("invalid placeholder")
)

// ParseError represents an error while parsing a configuration file.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Value is the invalid value.
	Value any
	// Err is the sentinel describing the failure.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v (value: %q)", e.Path, e.Err, fmt.Sprint(e.Value))
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
