package appstate

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
	"github.com/quireapp/quire/internal/storage"
)

// Store is the single state container for a running quire process.
//
// It is explicitly constructed and injected into presentation layers rather
// than accessed as ambient global state, so tests can run isolated instances.
type Store struct {
	mu              sync.Mutex
	service         *storage.Service
	logger          *log.Logger
	sheets          []models.Sheet
	playlists       []models.Playlist
	currentSheet    *models.Sheet
	currentPlaylist *models.Playlist
	loading         bool
	lastErr         string
	listeners       []func()
}

// NewStore creates a Store over the given persistence service.
// The logger defaults to stderr when nil.
func NewStore(service *storage.Service, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		service:   service,
		logger:    logger,
		sheets:    []models.Sheet{},
		playlists: []models.Playlist{},
	}
}

// Initialize sets the loading flag, delegates to the persistence service's
// init plus both collection reads, then clears loading. On failure the error
// is recorded and returned; the store stays usable with empty collections.
func (s *Store) Initialize() error {
	s.mutate(func() { s.loading = true })

	err := s.service.Init()
	if err != nil {
		s.mutate(func() {
			s.loading = false
			s.lastErr = err.Error()
		})
		return err
	}

	sheets := s.service.Sheets()
	playlists := s.service.Playlists()
	s.mutate(func() {
		s.sheets = sheets
		s.playlists = playlists
		s.loading = false
	})
	return nil
}

// Sheets returns the cached sheet collection, newest first.
func (s *Store) Sheets() []models.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sheets
}

// Playlists returns the cached playlist collection, newest first.
func (s *Store) Playlists() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlists
}

// CurrentSheet returns the selected sheet, or nil when nothing is selected.
func (s *Store) CurrentSheet() *models.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSheet
}

// CurrentPlaylist returns the selected playlist, or nil when nothing is selected.
func (s *Store) CurrentPlaylist() *models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPlaylist
}

// Loading reports whether initialization is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recently recorded action error, empty when none.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError resets the last-error field only.
func (s *Store) ClearError() {
	s.mutate(func() { s.lastErr = "" })
}

// SetCurrentSheet selects a sheet. Pure local state write, no persistence effect.
func (s *Store) SetCurrentSheet(sheet *models.Sheet) {
	s.mutate(func() { s.currentSheet = sheet })
}

// SetCurrentPlaylist selects a playlist. Pure local state write, no persistence effect.
func (s *Store) SetCurrentPlaylist(playlist *models.Playlist) {
	s.mutate(func() { s.currentPlaylist = playlist })
}

// Subscribe registers a callback invoked after every state change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// AddSheet creates a sheet through the persistence service and refreshes the
// cached collection.
func (s *Store) AddSheet(input storage.NewSheet) (models.Sheet, error) {
	sheet, err := s.service.AddSheet(input)
	if err != nil {
		s.recordError(err)
		return models.Sheet{}, err
	}
	s.refreshSheets()
	return sheet, nil
}

// UpdateSheet patches a sheet through the persistence service and refreshes
// the cached collection.
func (s *Store) UpdateSheet(id string, patch models.SheetPatch) (models.Sheet, error) {
	sheet, err := s.service.UpdateSheet(id, patch)
	if err != nil {
		s.recordError(err)
		return models.Sheet{}, err
	}
	s.refreshSheets()
	return sheet, nil
}

// DeleteSheet deletes a sheet through the persistence service and refreshes
// the cached collection.
func (s *Store) DeleteSheet(id string) error {
	if err := s.service.DeleteSheet(id); err != nil {
		s.recordError(err)
		return err
	}
	s.refreshSheets()
	return nil
}

// AddPlaylist creates a playlist through the persistence service and
// refreshes the cached collection.
func (s *Store) AddPlaylist(name string, sheetIDs []string) (models.Playlist, error) {
	playlist, err := s.service.AddPlaylist(name, sheetIDs)
	if err != nil {
		s.recordError(err)
		return models.Playlist{}, err
	}
	s.refreshPlaylists()
	return playlist, nil
}

// UpdatePlaylist patches a playlist through the persistence service and
// refreshes the cached collection.
func (s *Store) UpdatePlaylist(id string, patch models.PlaylistPatch) (models.Playlist, error) {
	playlist, err := s.service.UpdatePlaylist(id, patch)
	if err != nil {
		s.recordError(err)
		return models.Playlist{}, err
	}
	s.refreshPlaylists()
	return playlist, nil
}

// DeletePlaylist deletes a playlist through the persistence service and
// refreshes the cached collection.
func (s *Store) DeletePlaylist(id string) error {
	if err := s.service.DeletePlaylist(id); err != nil {
		s.recordError(err)
		return err
	}
	s.refreshPlaylists()
	return nil
}

// ClearAll empties both collections through the persistence service and
// refreshes both cached collections.
func (s *Store) ClearAll() error {
	if err := s.service.ClearAll(); err != nil {
		s.recordError(err)
		return err
	}
	s.refreshSheets()
	s.refreshPlaylists()
	return nil
}

// PlaylistSheets resolves the sheets referenced by a playlist, in
// sheet-collection order with dangling ids skipped.
func (s *Store) PlaylistSheets(playlistID string) []models.Sheet {
	return s.service.PlaylistSheets(playlistID)
}

// SearchSheets filters sheets by a case-insensitive name substring match.
func (s *Store) SearchSheets(query string) []models.Sheet {
	return s.service.SearchSheets(query)
}

// refreshSheets replaces the cached sheet collection with the authoritative
// one. Re-fetching after every mutation keeps the mirror and durable state
// from diverging when mutations land from more than one call site.
func (s *Store) refreshSheets() {
	sheets := s.service.Sheets()
	s.mutate(func() { s.sheets = sheets })
}

func (s *Store) refreshPlaylists() {
	playlists := s.service.Playlists()
	s.mutate(func() { s.playlists = playlists })
}

func (s *Store) recordError(err error) {
	s.logger.Error("store action failed", "err", err)
	s.mutate(func() { s.lastErr = err.Error() })
}

// mutate applies fn under the lock, then notifies subscribers outside it so
// callbacks can read store state without deadlocking.
func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	listeners := s.listeners
	s.mu.Unlock()

	for _, notify := range listeners {
		notify()
	}
}
