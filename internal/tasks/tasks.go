package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quireapp/quire/internal/appstate"
	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/storage"
	"github.com/quireapp/quire/internal/upload"
)

// FileImportResult is the per-file outcome of a batch import.
type FileImportResult struct {
	Path  string        // Source file path
	Sheet *models.Sheet // Created sheet (nil when rejected)
	Err   error         // Rejection or storage error
}

// ImportRunResult aggregates a batch import.
type ImportRunResult struct {
	Total    int
	Imported int
	Rejected int
	Results  []FileImportResult
}

// SheetExportResult is the per-sheet outcome of a bulk export.
type SheetExportResult struct {
	Sheet models.Sheet
	Path  string // Written file path (empty on failure)
	Err   error
}

// ExportRunResult aggregates a bulk export.
type ExportRunResult struct {
	Total           int
	Exported        int
	Failed          int
	OutputDirectory string
	Results         []SheetExportResult
}

// Engine orchestrates batch imports into and exports out of the library.
type Engine struct {
	store   *appstate.Store
	maxSize int64
}

// NewEngine creates an Engine over the application store. maxSize bounds
// accepted upload sizes and defaults to [upload.MaxFileSize] when zero.
func NewEngine(store *appstate.Store, maxSize int64) *Engine {
	if maxSize <= 0 {
		maxSize = upload.MaxFileSize
	}
	return &Engine{store: store, maxSize: maxSize}
}

// Import validates, encodes and adds each file as a sheet. A rejected file is
// recorded in the result and never aborts processing of the remaining files.
func (e *Engine) Import(ctx context.Context, prog chan<- ProgressUpdate, paths []string) (*ImportRunResult, error) {
	result := &ImportRunResult{
		Total:   len(paths),
		Results: make([]FileImportResult, 0, len(paths)),
	}

	for i, path := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.sendProgress(prog, importingUpdate(i+1, len(paths), path))

		name, mimeType, fileData, err := upload.ReadFile(path, e.maxSize)
		if err != nil {
			result.Rejected++
			result.Results = append(result.Results, FileImportResult{Path: path, Err: err})
			e.sendProgress(prog, importFailedUpdate(i+1, len(paths), err))
			continue
		}

		sheet, err := e.store.AddSheet(storage.NewSheet{Name: name, FileType: mimeType, FileData: fileData})
		if err != nil {
			result.Rejected++
			result.Results = append(result.Results, FileImportResult{Path: path, Err: err})
			e.sendProgress(prog, importFailedUpdate(i+1, len(paths), err))
			continue
		}

		result.Imported++
		result.Results = append(result.Results, FileImportResult{Path: path, Sheet: &sheet})
		e.sendProgress(prog, importedUpdate(i+1, len(paths), sheet.Name))
	}

	return result, nil
}

// ExportAll decodes every stored sheet back to its original bytes under
// outputDir. Individual failures are recorded per-sheet.
func (e *Engine) ExportAll(ctx context.Context, prog chan<- ProgressUpdate, outputDir string) (*ExportRunResult, error) {
	if outputDir == "" {
		outputDir = "quire_export"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	sheets := e.store.Sheets()
	result := &ExportRunResult{
		Total:           len(sheets),
		OutputDirectory: outputDir,
		Results:         make([]SheetExportResult, 0, len(sheets)),
	}

	for i, sheet := range sheets {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.sendProgress(prog, exportingUpdate(i+1, len(sheets), sheet.Name))

		path, err := ExportSheet(sheet, outputDir)
		if err != nil {
			result.Failed++
			result.Results = append(result.Results, SheetExportResult{Sheet: sheet, Err: err})
			e.sendProgress(prog, exportFailedUpdate(i+1, len(sheets), sheet.Name, err))
			continue
		}

		result.Exported++
		result.Results = append(result.Results, SheetExportResult{Sheet: sheet, Path: path})
		e.sendProgress(prog, exportedUpdate(i+1, len(sheets), path))
	}

	return result, nil
}

// ExportSheet decodes one sheet's payload and writes it under dir, deriving
// the filename from the sheet name and the extension from the embedded MIME
// type. Returns the written path.
func ExportSheet(sheet models.Sheet, dir string) (string, error) {
	mimeType, data, err := upload.Decode(sheet.FileData)
	if err != nil {
		return "", fmt.Errorf("failed to decode sheet %s: %w", sheet.ID, err)
	}

	path := uniquePath(dir, sanitizeFilename(sheet.Name), extensionFor(mimeType), sheet.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// sendProgress sends a non-blocking progress update, dropping it when the
// consumer is absent or slow.
func (e *Engine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}

// extensionFor maps an allow-listed MIME type to a file extension.
func extensionFor(mimeType string) string {
	switch mimeType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	default:
		return ".bin"
	}
}

// sanitizeFilename strips path separators and control characters from a
// sheet name so it is safe as a filename.
func sanitizeFilename(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':':
			return '_'
		case r < 0x20:
			return -1
		default:
			return r
		}
	}, name)
	if sanitized == "" {
		sanitized = "sheet"
	}
	return sanitized
}

// uniquePath joins dir, name and ext, suffixing the record id when the plain
// name is already taken.
func uniquePath(dir, name, ext, id string) string {
	path := filepath.Join(dir, name+ext)
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, id, ext))
	}
	return path
}
