package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quireapp/quire/internal/models"
	"github.com/quireapp/quire/internal/shared"
)

// Service is the sole authority over the sheet and playlist collections.
//
// Collections live in memory, newest first, and every mutation re-serializes
// the whole affected collection to the backend before the in-memory copy is
// committed; a failed durable write rejects the mutation and leaves memory
// untouched. A mutex serializes all access, so callers on different
// goroutines can never observe a collection that diverges from durable state.
type Service struct {
	mu          sync.Mutex
	backend     Backend
	logger      *log.Logger
	sheets      []models.Sheet
	playlists   []models.Playlist
	initialized bool
}

// NewSheet carries caller-supplied fields for a sheet add operation.
// Identity and timestamps are assigned by the service.
type NewSheet struct {
	Name     string
	FileType string
	FileData string
}

// NewService creates a Service over the given backend. The logger defaults
// to stderr when nil.
func NewService(backend Backend, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{
		backend:   backend,
		logger:    logger,
		sheets:    []models.Sheet{},
		playlists: []models.Playlist{},
	}
}

// Init loads both collections from the backend. Idempotent: subsequent calls
// after a successful load are no-ops. A missing key yields an empty
// collection; present-but-corrupt data is logged and returned as an error
// with the collections left empty.
func (s *Service) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	sheets, err := loadCollection[models.Sheet](s.backend, models.Sheets)
	if err != nil {
		s.logger.Error("failed to load sheets from storage", "err", err)
		return fmt.Errorf("storage init failed: %w", err)
	}

	playlists, err := loadCollection[models.Playlist](s.backend, models.Playlists)
	if err != nil {
		s.logger.Error("failed to load playlists from storage", "err", err)
		return fmt.Errorf("storage init failed: %w", err)
	}

	s.sheets = sheets
	s.playlists = playlists
	s.initialized = true
	s.logger.Info("storage initialized", "sheets", len(sheets), "playlists", len(playlists))
	return nil
}

// Sheets returns a copy of the full sheet collection, newest first.
func (s *Service) Sheets() []models.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSheets(s.sheets)
}

// Playlists returns a copy of the full playlist collection, newest first.
func (s *Service) Playlists() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePlaylists(s.playlists)
}

// Sheet returns the sheet with the given id or [shared.ErrNotFound].
func (s *Service) Sheet(id string) (models.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sheets {
		if s.sheets[i].ID == id {
			return s.sheets[i].Clone(), nil
		}
	}
	return models.Sheet{}, fmt.Errorf("sheet %s: %w", id, shared.ErrNotFound)
}

// Playlist returns the playlist with the given id or [shared.ErrNotFound].
func (s *Service) Playlist(id string) (models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlists {
		if s.playlists[i].ID == id {
			return s.playlists[i].Clone(), nil
		}
	}
	return models.Playlist{}, fmt.Errorf("playlist %s: %w", id, shared.ErrNotFound)
}

// AddSheet assigns a fresh id, stamps equal create/update timestamps,
// prepends the sheet and persists the collection. Returns the created record.
func (s *Service) AddSheet(input NewSheet) (models.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return models.Sheet{}, shared.ErrNotInitialized
	}

	now := time.Now().UTC()
	sheet := models.Sheet{
		ID:          shared.GenerateID(),
		Name:        input.Name,
		FileType:    input.FileType,
		FileData:    input.FileData,
		Annotations: []json.RawMessage{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := sheet.Validate(); err != nil {
		return models.Sheet{}, fmt.Errorf("validation failed: %w", err)
	}

	next := append([]models.Sheet{sheet}, s.sheets...)
	if err := persistCollection(s.backend, models.Sheets, next); err != nil {
		return models.Sheet{}, err
	}

	s.sheets = next
	s.logger.Debug("sheet added", "id", sheet.ID, "name", sheet.Name)
	return sheet.Clone(), nil
}

// UpdateSheet shallow-merges the patch over the stored sheet, refreshes the
// update timestamp and persists. Fails with [shared.ErrNotFound] if absent.
func (s *Service) UpdateSheet(id string, patch models.SheetPatch) (models.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return models.Sheet{}, shared.ErrNotInitialized
	}

	idx := slices.IndexFunc(s.sheets, func(sh models.Sheet) bool { return sh.ID == id })
	if idx < 0 {
		return models.Sheet{}, fmt.Errorf("sheet %s: %w", id, shared.ErrNotFound)
	}

	updated := s.sheets[idx].Clone()
	patch.Apply(&updated)
	updated.UpdatedAt = laterOf(time.Now().UTC(), s.sheets[idx].UpdatedAt)
	if err := updated.Validate(); err != nil {
		return models.Sheet{}, fmt.Errorf("validation failed: %w", err)
	}

	next := slices.Clone(s.sheets)
	next[idx] = updated
	if err := persistCollection(s.backend, models.Sheets, next); err != nil {
		return models.Sheet{}, err
	}

	s.sheets = next
	s.logger.Debug("sheet updated", "id", id, "name", updated.Name)
	return updated.Clone(), nil
}

// DeleteSheet removes the sheet if present and persists. Idempotent: deleting
// a nonexistent id is not an error.
func (s *Service) DeleteSheet(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return shared.ErrNotInitialized
	}

	idx := slices.IndexFunc(s.sheets, func(sh models.Sheet) bool { return sh.ID == id })
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.sheets), idx, idx+1)
	if err := persistCollection(s.backend, models.Sheets, next); err != nil {
		return err
	}

	s.sheets = next
	s.logger.Debug("sheet deleted", "id", id)
	return nil
}

// AddPlaylist assigns a fresh id, stamps equal create/update timestamps,
// prepends the playlist and persists the collection. Sheet ids are not
// checked for existence; resolution happens lazily in [Service.PlaylistSheets].
func (s *Service) AddPlaylist(name string, sheetIDs []string) (models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return models.Playlist{}, shared.ErrNotInitialized
	}

	if sheetIDs == nil {
		sheetIDs = []string{}
	}
	now := time.Now().UTC()
	playlist := models.Playlist{
		ID:        shared.GenerateID(),
		Name:      name,
		SheetIDs:  slices.Clone(sheetIDs),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := playlist.Validate(); err != nil {
		return models.Playlist{}, fmt.Errorf("validation failed: %w", err)
	}

	next := append([]models.Playlist{playlist}, s.playlists...)
	if err := persistCollection(s.backend, models.Playlists, next); err != nil {
		return models.Playlist{}, err
	}

	s.playlists = next
	s.logger.Debug("playlist added", "id", playlist.ID, "name", playlist.Name)
	return playlist.Clone(), nil
}

// UpdatePlaylist shallow-merges the patch over the stored playlist, refreshes
// the update timestamp and persists. Fails with [shared.ErrNotFound] if absent.
func (s *Service) UpdatePlaylist(id string, patch models.PlaylistPatch) (models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return models.Playlist{}, shared.ErrNotInitialized
	}

	idx := slices.IndexFunc(s.playlists, func(pl models.Playlist) bool { return pl.ID == id })
	if idx < 0 {
		return models.Playlist{}, fmt.Errorf("playlist %s: %w", id, shared.ErrNotFound)
	}

	updated := s.playlists[idx].Clone()
	patch.Apply(&updated)
	updated.UpdatedAt = laterOf(time.Now().UTC(), s.playlists[idx].UpdatedAt)
	if err := updated.Validate(); err != nil {
		return models.Playlist{}, fmt.Errorf("validation failed: %w", err)
	}

	next := slices.Clone(s.playlists)
	next[idx] = updated
	if err := persistCollection(s.backend, models.Playlists, next); err != nil {
		return models.Playlist{}, err
	}

	s.playlists = next
	s.logger.Debug("playlist updated", "id", id, "name", updated.Name)
	return updated.Clone(), nil
}

// DeletePlaylist removes the playlist if present and persists. Idempotent.
func (s *Service) DeletePlaylist(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return shared.ErrNotInitialized
	}

	idx := slices.IndexFunc(s.playlists, func(pl models.Playlist) bool { return pl.ID == id })
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.playlists), idx, idx+1)
	if err := persistCollection(s.backend, models.Playlists, next); err != nil {
		return err
	}

	s.playlists = next
	s.logger.Debug("playlist deleted", "id", id)
	return nil
}

// PlaylistSheets returns the sheets referenced by the playlist, in
// sheet-collection order (not playlist order), skipping dangling ids.
// An unknown playlist id yields an empty slice.
func (s *Service) PlaylistSheets(playlistID string) []models.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.playlists, func(pl models.Playlist) bool { return pl.ID == playlistID })
	if idx < 0 {
		return []models.Sheet{}
	}

	wanted := make(map[string]struct{}, len(s.playlists[idx].SheetIDs))
	for _, id := range s.playlists[idx].SheetIDs {
		wanted[id] = struct{}{}
	}

	matched := []models.Sheet{}
	for i := range s.sheets {
		if _, ok := wanted[s.sheets[i].ID]; ok {
			matched = append(matched, s.sheets[i].Clone())
		}
	}
	return matched
}

// SearchSheets returns the sheets whose name contains the query,
// case-insensitively. A blank query returns the whole collection.
func (s *Service) SearchSheets(query string) []models.Sheet {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cloneSheets(s.sheets)
	}

	matched := []models.Sheet{}
	for i := range s.sheets {
		if strings.Contains(strings.ToLower(s.sheets[i].Name), q) {
			matched = append(matched, s.sheets[i].Clone())
		}
	}
	return matched
}

// ClearAll empties both collections and removes their durable keys.
// Used by reset and test paths only.
func (s *Service) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(string(models.Sheets)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageFailed, err)
	}
	if err := s.backend.Delete(string(models.Playlists)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorageFailed, err)
	}

	s.sheets = []models.Sheet{}
	s.playlists = []models.Playlist{}
	s.logger.Info("all data cleared")
	return nil
}

// loadCollection reads one collection key from the backend. A missing key is
// an empty collection, not an error; unparseable data is [shared.ErrCorruptData].
func loadCollection[T any](b Backend, c models.Collection) ([]T, error) {
	data, ok, err := b.Read(string(c))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", shared.ErrStorageFailed, c, err)
	}
	if !ok {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", shared.ErrCorruptData, c, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// persistCollection serializes the whole collection to its backend key.
func persistCollection[T any](b Backend, c models.Collection, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", c, err)
	}
	if err := b.Write(string(c), data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", shared.ErrStorageFailed, c, err)
	}
	return nil
}

func cloneSheets(in []models.Sheet) []models.Sheet {
	out := make([]models.Sheet, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func clonePlaylists(in []models.Playlist) []models.Playlist {
	out := make([]models.Playlist, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// laterOf keeps update timestamps monotonic non-decreasing even if the wall
// clock steps backwards between mutations.
func laterOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return b
	}
	return a
}
