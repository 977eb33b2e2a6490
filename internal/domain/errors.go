// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT process exit
// codes. They are infrastructure-agnostic and are mapped to log output
// and exit status by the callers.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrInputNotFound indicates the quotes file does not exist.
	// This is fatal: the batch aborts rather than producing zero images.
	ErrInputNotFound = errors.New("input not found")

	// ErrNoQuotes indicates the input file parsed to zero usable quotes.
	ErrNoQuotes = errors.New("no quotes found")

	// ErrFontLoad indicates the configured font file could not be
	// opened or parsed. Renderers recover by substituting the built-in
	// default face.
	ErrFontLoad = errors.New("font load failed")

	// ErrOutputWrite indicates an image could not be written to its
	// destination. Surfaced per image; the batch may continue.
	ErrOutputWrite = errors.New("output write failed")

	// ErrValidation indicates configuration or option validation failed.
	ErrValidation = errors.New("validation failed")
)

// InputNotFoundError provides context for missing input files.
type InputNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("quotes file %q not found", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *InputNotFoundError) Unwrap() error {
	return ErrInputNotFound
}

// NewInputNotFoundError creates an input-not-found error with context.
func NewInputNotFoundError(path string) error {
	return &InputNotFoundError{Path: path}
}

// FontLoadError provides context for font loading failures.
type FontLoadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *FontLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("loading font %q: %v", e.Path, e.Cause)
	}

	return fmt.Sprintf("loading font %q failed", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *FontLoadError) Unwrap() error {
	return ErrFontLoad
}

// NewFontLoadError creates a font load error with context.
func NewFontLoadError(path string, cause error) error {
	return &FontLoadError{Path: path, Cause: cause}
}

// OutputWriteError provides context for image write failures.
type OutputWriteError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *OutputWriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("writing image %q: %v", e.Path, e.Cause)
	}

	return fmt.Sprintf("writing image %q failed", e.Path)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *OutputWriteError) Unwrap() error {
	return ErrOutputWrite
}

// NewOutputWriteError creates an output write error with context.
func NewOutputWriteError(path string, cause error) error {
	return &OutputWriteError{Path: path, Cause: cause}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the
// invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// IsInputNotFound checks if an error is an input-not-found error.
func IsInputNotFound(err error) bool {
	return errors.Is(err, ErrInputNotFound)
}

// IsFontLoad checks if an error is a font load error.
func IsFontLoad(err error) bool {
	return errors.Is(err, ErrFontLoad)
}

// IsOutputWrite checks if an error is an output write error.
func IsOutputWrite(err error) bool {
	return errors.Is(err, ErrOutputWrite)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
