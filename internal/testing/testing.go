// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// PDFData returns fake PDF file content padded to the given size.
// The content is not a renderable document, just bytes with a PDF header.
func PDFData(size int) []byte {
	header := []byte("%PDF-1.4\n")
	if size <= len(header) {
		return header[:size]
	}
	return append(header, bytes.Repeat([]byte{'x'}, size-len(header))...)
}

// PNGData returns a minimal PNG signature for fixture files.
func PNGData() []byte {
	return []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
}

// WriteTempFile writes data to name under dir and returns the full path.
func WriteTempFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write temp file %s: %v", path, err)
	}
	return path
}

// MustReadFile reads a file or fails the test.
func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return content
}

// AssertFileExists fails the test when path does not exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
