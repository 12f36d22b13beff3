package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
	ErrSampleNotFound = fmt.Errorf("%w: sample dataset", ErrNotFound)
	ErrNoSession      = fmt.Errorf("%w: session", ErrNotFound)

	// Validation errors
	ErrGridInvalid       = errors.New("dataset grid has empty cells or no numeric column")
	ErrColumnName        = errors.New("invalid column name")
	ErrGridShape         = errors.New("grid shape constraint violated")
	ErrUnknownChartType  = errors.New("unknown chart type")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// NewColumnNotFoundError reports a selection that names a column absent from the active dataset
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

// NewValidationError reports a field-level validation failure
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// IsNotFoundError reports whether err wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err is a user-correctable input problem
func IsValidationError(err error) bool {
	return errors.Is(err, ErrGridInvalid) ||
		errors.Is(err, ErrColumnName) ||
		errors.Is(err, ErrGridShape) ||
		errors.Is(err, ErrUnknownChartType) ||
		errors.Is(err, ErrUnsupportedFormat)
}
