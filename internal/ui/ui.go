package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quireapp/quire/internal/appstate"
	"github.com/quireapp/quire/internal/formatter"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SheetListView ViewState = iota
	PlaylistListView
	PlaylistSheetsView
	SheetDetailView
)

// Model represents the TUI application state.
type Model struct {
	store          *appstate.Store
	view           ViewState
	width          int
	height         int
	sheetList      list.Model
	playlistList   list.Model
	playlistSheets list.Model
	help           help.Model
	keys           keyMap
	err            error
}

// NewModel creates a new TUI model over an initialized application store.
func NewModel(store *appstate.Store) *Model {
	m := &Model{
		store: store,
		view:  SheetListView,
		help:  help.New(),
		keys:  newKeyMap(),
	}

	m.sheetList = list.New(sheetItems(store.Sheets()), list.NewDefaultDelegate(), 0, 0)
	m.sheetList.Title = "Sheets"
	m.playlistList = list.New(playlistItems(store.Playlists()), list.NewDefaultDelegate(), 0, 0)
	m.playlistList.Title = "Playlists"

	return m
}

// Init implements [tea.Model]. The store is loaded before the TUI launches,
// so there is no startup command to run.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sheetList.SetSize(msg.Width-4, msg.Height-8)
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		m.playlistSheets.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SheetListView:
			return m.handleSheetListKeys(msg)
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case PlaylistSheetsView:
			return m.handlePlaylistSheetsKeys(msg)
		case SheetDetailView:
			return m.handleDetailKeys(msg)
		}
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string

	switch m.view {
	case SheetListView:
		body = m.sheetList.View()
	case PlaylistListView:
		body = m.playlistList.View()
	case PlaylistSheetsView:
		body = m.playlistSheets.View()
	case SheetDetailView:
		body = m.renderDetail()
	}

	footer := styles.dim.Render(m.help.View(m.keys))
	if m.err != nil {
		footer = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + footer
	}

	return body + "\n" + footer
}

func (m *Model) handleSheetListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sheetList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.tab):
			m.view = PlaylistListView
			return m, nil
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.sheetList.SelectedItem().(sheetItem); ok {
				sheet := item.sheet
				m.store.SetCurrentSheet(&sheet)
				m.view = SheetDetailView
			}
			return m, nil
		case key.Matches(msg, m.keys.delete):
			if item, ok := m.sheetList.SelectedItem().(sheetItem); ok {
				m.err = m.store.DeleteSheet(item.sheet.ID)
				m.sheetList.SetItems(sheetItems(m.store.Sheets()))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.sheetList, cmd = m.sheetList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.playlistList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.tab), key.Matches(msg, m.keys.back):
			m.view = SheetListView
			return m, nil
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
				playlist := item.playlist
				m.store.SetCurrentPlaylist(&playlist)
				m.playlistSheets = list.New(sheetItems(m.store.PlaylistSheets(playlist.ID)), list.NewDefaultDelegate(), m.width-4, m.height-8)
				m.playlistSheets.Title = fmt.Sprintf("Sheets in '%s'", playlist.Name)
				m.view = PlaylistSheetsView
			}
			return m, nil
		case key.Matches(msg, m.keys.delete):
			if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
				m.err = m.store.DeletePlaylist(item.playlist.ID)
				m.playlistList.SetItems(playlistItems(m.store.Playlists()))
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistSheetsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.store.SetCurrentPlaylist(nil)
		m.view = PlaylistListView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.playlistSheets.SelectedItem().(sheetItem); ok {
			sheet := item.sheet
			m.store.SetCurrentSheet(&sheet)
			m.view = SheetDetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistSheets, cmd = m.playlistSheets.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.store.SetCurrentSheet(nil)
		if m.store.CurrentPlaylist() != nil {
			m.view = PlaylistSheetsView
		} else {
			m.view = SheetListView
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) renderDetail() string {
	sheet := m.store.CurrentSheet()
	if sheet == nil {
		return styles.warn.Render("No sheet selected")
	}
	return styles.title.Render(sheet.Name) + "\n" + string(formatter.SheetToText(*sheet))
}
