// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI browses the sheet library through the application store:
//  1. [SheetListView] : Browse, filter and delete sheets
//  2. [PlaylistListView] : Browse and delete playlists
//  3. [PlaylistSheetsView] : Sheets resolved from the selected playlist
//  4. [SheetDetailView] : Metadata for the selected sheet
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// All data flows through the [appstate.Store]; the TUI never talks to the
// persistence layer directly, and every mutation re-renders from the store's
// refreshed collections.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, tab, d, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
