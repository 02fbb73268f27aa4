package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/quireapp/quire/internal/formatter"
	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
)

var (
	_ list.Item = sheetItem{}
	_ list.Item = playlistItem{}
)

// sheetItem wraps [models.Sheet] to implement [list.Item].
type sheetItem struct {
	sheet models.Sheet
}

func (i sheetItem) FilterValue() string { return i.sheet.Name }
func (i sheetItem) Title() string       { return i.sheet.Name }
func (i sheetItem) Description() string {
	size := shared.FormatSize(formatter.PayloadSize(i.sheet))
	desc := fmt.Sprintf("%s • %s", i.sheet.FileType, size)
	if n := len(i.sheet.Annotations); n > 0 {
		desc = fmt.Sprintf("%s • %d annotations", desc, n)
	}
	return desc
}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d sheets", len(i.playlist.SheetIDs))
}

func sheetItems(sheets []models.Sheet) []list.Item {
	items := make([]list.Item, len(sheets))
	for i, sheet := range sheets {
		items[i] = sheetItem{sheet: sheet}
	}
	return items
}

func playlistItems(playlists []models.Playlist) []list.Item {
	items := make([]list.Item, len(playlists))
	for i, playlist := range playlists {
		items[i] = playlistItem{playlist: playlist}
	}
	return items
}
