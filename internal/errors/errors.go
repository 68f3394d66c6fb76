// Package errors provides a structured error type hierarchy for chatfill.
//
// This package defines base error types for common error conditions, wrapped
// error types that add contextual information, and helper functions for
// error wrapping and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrNotFound - resource not found
//   - ErrInvalid - validation failed
//   - ErrTooLarge - input exceeds the size ceiling
//   - ErrUnsupported - unsupported document type
//   - ErrConversion - document conversion or generation failed
//   - ErrCanceled - user canceled operation
//
// Wrapped error types (add context):
//   - DocumentError{Op, Err, Name} - document processing errors
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrUnsupported
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "readDocument")
//
//	// Use structured error types
//	return &errors.DocumentError{Op: "generate", Err: errors.ErrConversion, Name: "lease.docx"}
//
//	// Check error types
//	if errors.IsTooLarge(err) {
//	    // respond 413
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrTooLarge indicates an upload exceeded the size ceiling.
	ErrTooLarge = baseError("too large")

	// ErrUnsupported indicates an unsupported document type.
	ErrUnsupported = baseError("unsupported document type")

	// ErrConversion indicates document conversion or generation failed.
	ErrConversion = baseError("conversion failed")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// DocumentError represents an error that occurred while processing a document.
type DocumentError struct {
	// Op is the operation being performed (e.g., "read", "extract", "generate").
	Op string
	// Err is the underlying error.
	Err error
	// Name is the document file name (optional).
	Name string
}

func (e *DocumentError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("document %s %q: %s", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("document %s: %s", e.Op, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsTooLarge reports whether err is or wraps ErrTooLarge.
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrTooLarge)
}

// IsUnsupported reports whether err is or wraps ErrUnsupported.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsConversion reports whether err is or wraps ErrConversion.
func IsConversion(err error) bool {
	return errors.Is(err, ErrConversion)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsDocumentError reports whether err can be typed as a *DocumentError.
func AsDocumentError(err error) (*DocumentError, bool) {
	var de *DocumentError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
