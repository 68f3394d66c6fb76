// Package testutil provides helper functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazuruo/chatfill/internal/docx"
)

// TempDir creates a temporary directory and registers a cleanup function.
// The directory is automatically deleted when the test completes.
func TempDir(t *testing.T) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Errorf("failed to cleanup temp dir %s: %v", dir, err)
		}
	})

	return dir
}

// WriteDocument builds a .docx file from document markup and writes it
// to a temporary location. The file is automatically deleted when the
// test completes.
func WriteDocument(t *testing.T, markup string) string {
	t.Helper()

	data, err := docx.Write(markup)
	if err != nil {
		t.Fatalf("failed to build document: %v", err)
	}

	dir := TempDir(t)
	path := filepath.Join(dir, "document.docx")

	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write document file: %v", err)
	}

	return path
}
