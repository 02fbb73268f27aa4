package ui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quireapp/quire/internal/appstate"
	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
	"github.com/quireapp/quire/internal/storage"
)

func newTestModel(t *testing.T) (*Model, *appstate.Store) {
	t.Helper()
	logger := shared.NewLogger(io.Discard)
	store := appstate.NewStore(storage.NewService(storage.NewMemoryBackend(), logger), logger)
	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	return NewModel(store), store
}

func keyPress(m tea.Model, key string) tea.Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next
}

func TestModelViewNavigation(t *testing.T) {
	t.Run("StartsOnSheetList", func(t *testing.T) {
		m, _ := newTestModel(t)
		if m.view != SheetListView {
			t.Errorf("Got view %v, expected sheet list", m.view)
		}
	})

	t.Run("TabCyclesLists", func(t *testing.T) {
		m, _ := newTestModel(t)

		next := keyPress(m, "tab").(*Model)
		if next.view != PlaylistListView {
			t.Errorf("Got view %v, expected playlist list", next.view)
		}

		next = keyPress(next, "tab").(*Model)
		if next.view != SheetListView {
			t.Errorf("Got view %v, expected sheet list", next.view)
		}
	})

	t.Run("EnterOpensDetail", func(t *testing.T) {
		m, store := newTestModel(t)
		if _, err := store.AddSheet(storage.NewSheet{Name: "Opened", FileType: "application/pdf"}); err != nil {
			t.Fatalf("Failed to add sheet: %v", err)
		}
		m = NewModel(store)

		next := keyPress(m, "enter").(*Model)
		if next.view != SheetDetailView {
			t.Errorf("Got view %v, expected detail view", next.view)
		}
		if got := store.CurrentSheet(); got == nil || got.Name != "Opened" {
			t.Errorf("Expected selection recorded in store, got %v", got)
		}

		next = keyPress(next, "esc").(*Model)
		if next.view != SheetListView {
			t.Errorf("Got view %v, expected sheet list after back", next.view)
		}
		if store.CurrentSheet() != nil {
			t.Error("Expected selection cleared after back")
		}
	})

	t.Run("QuitFromAnyList", func(t *testing.T) {
		m, _ := newTestModel(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if cmd == nil {
			t.Fatal("Expected quit command")
		}
	})
}

func TestModelDelete(t *testing.T) {
	m, store := newTestModel(t)
	if _, err := store.AddSheet(storage.NewSheet{Name: "Removable", FileType: "application/pdf"}); err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}
	m = NewModel(store)

	next := keyPress(m, "d").(*Model)
	if got := store.Sheets(); len(got) != 0 {
		t.Errorf("Expected sheet deleted through store, got %d", len(got))
	}
	if got := len(next.sheetList.Items()); got != 0 {
		t.Errorf("Expected list refreshed, got %d items", got)
	}
}

func TestModelPlaylistDrillDown(t *testing.T) {
	m, store := newTestModel(t)
	sheet, err := store.AddSheet(storage.NewSheet{Name: "In Set", FileType: "application/pdf"})
	if err != nil {
		t.Fatalf("Failed to add sheet: %v", err)
	}
	if _, err := store.AddPlaylist("Set", []string{sheet.ID}); err != nil {
		t.Fatalf("Failed to add playlist: %v", err)
	}
	m = NewModel(store)

	next := keyPress(m, "tab").(*Model)
	next = keyPress(next, "enter").(*Model)
	if next.view != PlaylistSheetsView {
		t.Fatalf("Got view %v, expected playlist sheets", next.view)
	}
	if got := len(next.playlistSheets.Items()); got != 1 {
		t.Errorf("Expected 1 resolved sheet listed, got %d", got)
	}

	next = keyPress(next, "esc").(*Model)
	if next.view != PlaylistListView {
		t.Errorf("Got view %v, expected playlist list after back", next.view)
	}
}

func TestModelItems(t *testing.T) {
	sheet := models.Sheet{Name: "Titled", FileType: "application/pdf"}
	item := sheetItem{sheet: sheet}
	if item.Title() != "Titled" || item.FilterValue() != "Titled" {
		t.Errorf("Unexpected sheet item: %q %q", item.Title(), item.FilterValue())
	}

	playlist := models.Playlist{Name: "Named", SheetIDs: []string{"a", "b"}}
	pItem := playlistItem{playlist: playlist}
	if pItem.Description() != "2 sheets" {
		t.Errorf("Got description %q, expected sheet count", pItem.Description())
	}
}
