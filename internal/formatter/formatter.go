// package formatter renders sheet and playlist listings in various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
)

const timeLayout = "2006-01-02 15:04"

// SheetsToCSV converts sheets to CSV with columns: ID, Name, Type, Size, Annotations, Created, Updated
func SheetsToCSV(sheets []models.Sheet) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Type", "Size", "Annotations", "Created", "Updated"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, sheet := range sheets {
		record := []string{
			sheet.ID,
			sheet.Name,
			sheet.FileType,
			strconv.FormatInt(PayloadSize(sheet), 10),
			strconv.Itoa(len(sheet.Annotations)),
			sheet.CreatedAt.Format(time.RFC3339),
			sheet.UpdatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SheetsToText converts sheets to an aligned plain-text listing
func SheetsToText(sheets []models.Sheet) []byte {
	var buf bytes.Buffer

	if len(sheets) == 0 {
		buf.WriteString("No sheets in the library.\n")
		return buf.Bytes()
	}

	buf.WriteString(fmt.Sprintf("Sheets: %d\n\n", len(sheets)))
	for i, sheet := range sheets {
		buf.WriteString(fmt.Sprintf("%d. %s [%s, %s]\n", i+1, sheet.Name, sheet.FileType, shared.FormatSize(PayloadSize(sheet))))
		buf.WriteString(fmt.Sprintf("   id: %s  added: %s\n", sheet.ID, sheet.CreatedAt.Format(timeLayout)))
	}

	return buf.Bytes()
}

// SheetToText converts a single sheet to a detailed plain-text block
func SheetToText(sheet models.Sheet) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Name:        %s\n", sheet.Name))
	buf.WriteString(fmt.Sprintf("ID:          %s\n", sheet.ID))
	buf.WriteString(fmt.Sprintf("Type:        %s\n", sheet.FileType))
	buf.WriteString(fmt.Sprintf("Size:        %s\n", shared.FormatSize(PayloadSize(sheet))))
	buf.WriteString(fmt.Sprintf("Annotations: %d\n", len(sheet.Annotations)))
	buf.WriteString(fmt.Sprintf("Created:     %s\n", sheet.CreatedAt.Format(timeLayout)))
	buf.WriteString(fmt.Sprintf("Updated:     %s\n", sheet.UpdatedAt.Format(timeLayout)))

	return buf.Bytes()
}

// PlaylistsToText converts playlists to a plain-text listing
func PlaylistsToText(playlists []models.Playlist) []byte {
	var buf bytes.Buffer

	if len(playlists) == 0 {
		buf.WriteString("No playlists in the library.\n")
		return buf.Bytes()
	}

	buf.WriteString(fmt.Sprintf("Playlists: %d\n\n", len(playlists)))
	for i, playlist := range playlists {
		buf.WriteString(fmt.Sprintf("%d. %s (%d sheets)\n", i+1, playlist.Name, len(playlist.SheetIDs)))
		buf.WriteString(fmt.Sprintf("   id: %s  created: %s\n", playlist.ID, playlist.CreatedAt.Format(timeLayout)))
	}

	return buf.Bytes()
}

// PlaylistToText converts a playlist and its resolved sheets to plain text
func PlaylistToText(playlist models.Playlist, sheets []models.Sheet) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("Sheets: %d referenced, %d resolved\n\n", len(playlist.SheetIDs), len(sheets)))

	for i, sheet := range sheets {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, sheet.Name, sheet.FileType))
	}

	return buf.Bytes()
}

// PlaylistToMarkdown converts a playlist and its resolved sheets to Markdown
func PlaylistToMarkdown(playlist models.Playlist, sheets []models.Sheet) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("**Sheets**: %d\n", len(sheets)))
	buf.WriteString(fmt.Sprintf("**Created**: %s\n\n", playlist.CreatedAt.Format(timeLayout)))

	buf.WriteString("## Sheets\n\n")
	for i, sheet := range sheets {
		buf.WriteString(fmt.Sprintf("%d. %s [%s, %s]\n", i+1, sheet.Name, sheet.FileType, shared.FormatSize(PayloadSize(sheet))))
	}

	return buf.Bytes()
}

// PayloadSize computes the decoded byte size of a sheet's encoded payload
// without decoding it.
func PayloadSize(sheet models.Sheet) int64 {
	_, payload, ok := strings.Cut(sheet.FileData, ";base64,")
	if !ok {
		return 0
	}
	size := int64(base64.StdEncoding.DecodedLen(len(payload)))
	size -= int64(strings.Count(payload[max(0, len(payload)-2):], "="))
	return max(size, 0)
}
