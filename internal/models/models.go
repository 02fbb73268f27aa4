package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Collection names one of the two ordered record sequences owned by the persistence service.
type Collection string

const (
	Sheets    Collection = "sheets"
	Playlists Collection = "playlists"
)

// AllowedFileTypes is the fixed MIME allow-list for sheet payloads.
var AllowedFileTypes = []string{
	"application/pdf",
	"image/png",
	"image/jpeg",
	"image/jpg",
}

// AllowedFileType reports whether t is on the sheet payload allow-list.
func AllowedFileType(t string) bool {
	return slices.Contains(AllowedFileTypes, t)
}

// Record defines the base interface for all persistent records in the sheet library.
type Record interface {
	RecordID() string   // RecordID returns the unique identifier for this record
	Created() time.Time // Created returns when this record was created
	Updated() time.Time // Updated returns when this record was last updated
	Validate() error    // Validate checks if the record's data is valid and returns an error if not
}

// Sheet is a stored music document.
//
// FileData holds the original file bytes as a self-describing data URI
// (data:<mime>;base64,<payload>), reversible to the exact source bytes.
// Annotations are opaque to this layer and carried through untouched.
type Sheet struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	FileType    string            `json:"fileType"`
	FileData    string            `json:"fileData"`
	Annotations []json.RawMessage `json:"annotations"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (s Sheet) RecordID() string   { return s.ID }
func (s Sheet) Created() time.Time { return s.CreatedAt }
func (s Sheet) Updated() time.Time { return s.UpdatedAt }

// Validate checks required fields and the MIME allow-list.
func (s Sheet) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("sheet name is required")
	}
	if !AllowedFileType(s.FileType) {
		return fmt.Errorf("file type %q is not allowed", s.FileType)
	}
	return nil
}

// Clone returns a deep copy of the sheet, including its annotation records.
func (s Sheet) Clone() Sheet {
	c := s
	c.Annotations = make([]json.RawMessage, len(s.Annotations))
	for i, a := range s.Annotations {
		c.Annotations[i] = slices.Clone(a)
	}
	return c
}

// Playlist is a named, ordered reference list of sheet ids.
//
// Referenced ids need not currently exist in the sheet collection; duplicates
// and dangling references are permitted and resolved lazily at read time.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SheetIDs  []string  `json:"sheetIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Playlist) RecordID() string   { return p.ID }
func (p Playlist) Created() time.Time { return p.CreatedAt }
func (p Playlist) Updated() time.Time { return p.UpdatedAt }

// Validate checks required fields.
func (p Playlist) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}

// Clone returns a deep copy of the playlist.
func (p Playlist) Clone() Playlist {
	c := p
	c.SheetIDs = slices.Clone(p.SheetIDs)
	return c
}

// SheetPatch is a partial field set merged over an existing sheet.
//
// Nil pointer fields are left untouched; a nil Annotations slice means
// "unchanged" while a non-nil empty slice clears the annotations.
type SheetPatch struct {
	Name        *string
	FileType    *string
	FileData    *string
	Annotations []json.RawMessage
}

// Apply shallow-merges the patch over s. Unspecified fields are never dropped.
func (p SheetPatch) Apply(s *Sheet) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.FileType != nil {
		s.FileType = *p.FileType
	}
	if p.FileData != nil {
		s.FileData = *p.FileData
	}
	if p.Annotations != nil {
		s.Annotations = make([]json.RawMessage, len(p.Annotations))
		for i, a := range p.Annotations {
			s.Annotations[i] = slices.Clone(a)
		}
	}
}

// PlaylistPatch is a partial field set merged over an existing playlist.
type PlaylistPatch struct {
	Name     *string
	SheetIDs []string
}

// Apply shallow-merges the patch over pl. A nil SheetIDs slice means "unchanged".
func (p PlaylistPatch) Apply(pl *Playlist) {
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.SheetIDs != nil {
		pl.SheetIDs = slices.Clone(p.SheetIDs)
	}
}
