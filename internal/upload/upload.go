package upload

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
)

// MaxFileSize is the default upload size limit in bytes. The check is
// inclusive: a file of exactly this size is accepted.
const MaxFileSize int64 = 10 * 1024 * 1024

// dataURIPrefix marks the self-describing encoding produced by [Encode].
const dataURIPrefix = "data:"

// Validate checks a file's MIME type against the allow-list and its size
// against the limit. Error messages name the file so they can be reported
// per-file in a batch.
func Validate(name, mimeType string, size, maxSize int64) error {
	if !models.AllowedFileType(mimeType) {
		return fmt.Errorf("%s: %w: %q (only PDF, PNG and JPG are allowed)", name, shared.ErrInvalidFileType, mimeType)
	}
	if size > maxSize {
		return fmt.Errorf("%s: %w (%s, maximum size is %s)", name, shared.ErrFileTooLarge, shared.FormatSize(size), shared.FormatSize(maxSize))
	}
	return nil
}

// DetectFileType resolves a file's MIME type from its extension, falling back
// to content sniffing for unknown extensions.
func DetectFileType(name string, data []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return http.DetectContentType(data)
}

// SheetName derives the default display name for a file: the base filename
// with its extension stripped.
func SheetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Encode converts file bytes to the self-describing data URI stored as a
// sheet's payload.
func Encode(mimeType string, data []byte) string {
	return dataURIPrefix + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode reverses [Encode], returning the embedded MIME type and the original
// file bytes.
func Decode(dataURI string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURI, dataURIPrefix)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing %q prefix", shared.ErrInvalidEncoding, dataURIPrefix)
	}

	mimeType, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing base64 marker", shared.ErrInvalidEncoding)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", shared.ErrInvalidEncoding, err)
	}
	return mimeType, data, nil
}

// ReadFile validates and encodes a file on disk, returning the fields for a
// sheet add operation.
func ReadFile(path string, maxSize int64) (name, mimeType, fileData string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to stat file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to read file: %w", err)
	}

	mimeType = DetectFileType(path, data)
	if err := Validate(filepath.Base(path), mimeType, info.Size(), maxSize); err != nil {
		return "", "", "", err
	}

	return SheetName(path), mimeType, Encode(mimeType, data), nil
}
