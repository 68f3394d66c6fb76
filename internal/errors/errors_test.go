package errors_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	cferrors "github.com/chazuruo/chatfill/internal/errors"
)

// TestBaseErrors verifies that all base error types have correct messages.
func TestBaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrNotFound", cferrors.ErrNotFound, "not found"},
		{"ErrInvalid", cferrors.ErrInvalid, "invalid"},
		{"ErrTooLarge", cferrors.ErrTooLarge, "too large"},
		{"ErrUnsupported", cferrors.ErrUnsupported, "unsupported document type"},
		{"ErrConversion", cferrors.ErrConversion, "conversion failed"},
		{"ErrCanceled", cferrors.ErrCanceled, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDocumentError verifies DocumentError formatting and unwrapping.
func TestDocumentError(t *testing.T) {
	tests := []struct {
		name string
		err  *cferrors.DocumentError
		want string
	}{
		{
			name: "with name",
			err:  &cferrors.DocumentError{Op: "read", Err: cferrors.ErrUnsupported, Name: "lease.pdf"},
			want: `document read "lease.pdf": unsupported document type`,
		},
		{
			name: "without name",
			err:  &cferrors.DocumentError{Op: "generate", Err: cferrors.ErrConversion},
			want: "document generate: conversion failed",
		},
		{
			name: "wrapped os error",
			err:  &cferrors.DocumentError{Op: "open", Err: os.ErrNotExist, Name: "missing.docx"},
			want: `document open "missing.docx": file does not exist`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("Unwrap returns original error", func(t *testing.T) {
		original := cferrors.ErrConversion
		wrapped := &cferrors.DocumentError{Op: "generate", Err: original}
		if !errors.Is(wrapped, original) {
			t.Error("Unwrap() did not return the original error for errors.Is")
		}
	})
}

// TestConfigError verifies ConfigError formatting and unwrapping.
func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *cferrors.ConfigError
		want string
	}{
		{
			name: "with path",
			err:  &cferrors.ConfigError{Path: "~/.config/chatfill/config.toml", Err: cferrors.ErrInvalid},
			want: "config ~/.config/chatfill/config.toml: invalid",
		},
		{
			name: "without path",
			err:  &cferrors.ConfigError{Err: cferrors.ErrNotFound},
			want: "config: not found",
		},
		{
			name: "wrapped custom error",
			err:  &cferrors.ConfigError{Path: "/etc/chatfill.toml", Err: fmt.Errorf("parse error")},
			want: "config /etc/chatfill.toml: parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("Unwrap returns original error", func(t *testing.T) {
		original := cferrors.ErrInvalid
		wrapped := &cferrors.ConfigError{Err: original}
		if !errors.Is(wrapped, original) {
			t.Error("Unwrap() did not return the original error for errors.Is")
		}
	})
}

// TestWrap verifies the Wrap helper function.
func TestWrap(t *testing.T) {
	original := cferrors.ErrNotFound
	wrapped := cferrors.Wrap(original, "readDocument")

	if got := wrapped.Error(); got != "readDocument: not found" {
		t.Errorf("Error() = %q, want 'readDocument: not found'", got)
	}

	t.Run("Unwrap returns original error", func(t *testing.T) {
		if !errors.Is(wrapped, original) {
			t.Error("Wrap() did not preserve the original error for errors.Is")
		}
	})

	t.Run("Double wrap preserves original", func(t *testing.T) {
		doubleWrapped := cferrors.Wrap(wrapped, "upload")
		if !errors.Is(doubleWrapped, original) {
			t.Error("Double wrap did not preserve the original error")
		}
	})
}

// TestIsHelpers verifies all Is<TYPE>() helper functions.
func TestIsHelpers(t *testing.T) {
	baseTests := []struct {
		name    string
		baseErr error
		isFunc  func(error) bool
	}{
		{"IsNotFound", cferrors.ErrNotFound, cferrors.IsNotFound},
		{"IsInvalid", cferrors.ErrInvalid, cferrors.IsInvalid},
		{"IsTooLarge", cferrors.ErrTooLarge, cferrors.IsTooLarge},
		{"IsUnsupported", cferrors.ErrUnsupported, cferrors.IsUnsupported},
		{"IsConversion", cferrors.ErrConversion, cferrors.IsConversion},
		{"IsCanceled", cferrors.ErrCanceled, cferrors.IsCanceled},
	}

	for _, tt := range baseTests {
		t.Run(tt.name+" direct", func(t *testing.T) {
			if !tt.isFunc(tt.baseErr) {
				t.Errorf("%s(%v) = false, want true", tt.name, tt.baseErr)
			}
		})
	}

	t.Run("IsTooLarge with wrapped error", func(t *testing.T) {
		wrapped := &cferrors.DocumentError{Op: "upload", Err: cferrors.ErrTooLarge}
		if !cferrors.IsTooLarge(wrapped) {
			t.Error("IsTooLarge(wrapped DocumentError) = false, want true")
		}
	})

	t.Run("IsNotFound with different error", func(t *testing.T) {
		if cferrors.IsNotFound(cferrors.ErrInvalid) {
			t.Error("IsNotFound(ErrInvalid) = true, want false")
		}
	})
}

// TestAsHelpers verifies the As<TYPE>Error() helper functions.
func TestAsHelpers(t *testing.T) {
	t.Run("AsDocumentError", func(t *testing.T) {
		de := &cferrors.DocumentError{Op: "read", Err: cferrors.ErrUnsupported, Name: "t.docx"}
		result, ok := cferrors.AsDocumentError(de)
		if !ok {
			t.Fatal("AsDocumentError(valid) = false, want true")
		}
		if result.Op != "read" || result.Name != "t.docx" {
			t.Errorf("AsDocumentError returned wrong struct: got Op=%q, Name=%q", result.Op, result.Name)
		}
	})

	t.Run("AsDocumentError with wrapped", func(t *testing.T) {
		wrapped := cferrors.Wrap(&cferrors.DocumentError{Op: "generate", Err: cferrors.ErrConversion}, "outer")
		result, ok := cferrors.AsDocumentError(wrapped)
		if !ok {
			t.Fatal("AsDocumentError(wrapped) = false, want true")
		}
		if result.Op != "generate" {
			t.Errorf("AsDocumentError returned wrong Op: got %q, want 'generate'", result.Op)
		}
	})

	t.Run("AsDocumentError with wrong type", func(t *testing.T) {
		_, ok := cferrors.AsDocumentError(cferrors.ErrNotFound)
		if ok {
			t.Error("AsDocumentError(ErrNotFound) = true, want false")
		}
	})

	t.Run("AsConfigError", func(t *testing.T) {
		ce := &cferrors.ConfigError{Path: "/path/to/config", Err: cferrors.ErrInvalid}
		result, ok := cferrors.AsConfigError(ce)
		if !ok {
			t.Fatal("AsConfigError(valid) = false, want true")
		}
		if result.Path != "/path/to/config" {
			t.Errorf("AsConfigError returned wrong Path: got %q, want '/path/to/config'", result.Path)
		}
	})

	t.Run("AsConfigError with wrong type", func(t *testing.T) {
		_, ok := cferrors.AsConfigError(cferrors.ErrInvalid)
		if ok {
			t.Error("AsConfigError(ErrInvalid) = true, want false")
		}
	})
}

// TestErrorChaining verifies that error chaining works correctly.
func TestErrorChaining(t *testing.T) {
	t.Run("Chain of wrapped errors", func(t *testing.T) {
		base := cferrors.ErrNotFound
		layer1 := cferrors.Wrap(base, "layer1")
		layer2 := cferrors.Wrap(layer1, "layer2")
		layer3 := cferrors.Wrap(layer2, "layer3")

		if !errors.Is(layer3, base) {
			t.Error("Triple-wrapped error does not match base via errors.Is")
		}

		expected := "layer3: layer2: layer1: not found"
		if got := layer3.Error(); got != expected {
			t.Errorf("Chained error message = %q, want %q", got, expected)
		}
	})

	t.Run("DocumentError in chain", func(t *testing.T) {
		base := cferrors.ErrConversion
		docErr := &cferrors.DocumentError{Op: "generate", Err: base, Name: "lease.docx"}
		wrapped := cferrors.Wrap(docErr, "download")

		if !errors.Is(wrapped, base) {
			t.Error("Chained error does not match base via errors.Is")
		}

		var de *cferrors.DocumentError
		if !errors.As(wrapped, &de) {
			t.Error("Cannot extract DocumentError from chain via errors.As")
		}
		if de.Name != "lease.docx" {
			t.Errorf("Extracted DocumentError has wrong Name: got %q, want 'lease.docx'", de.Name)
		}
	})
}
