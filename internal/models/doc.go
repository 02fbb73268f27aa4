// Package models defines the domain entities for the quire sheet-music library.
//
// The package contains two record types and their patch counterparts:
//   - [Sheet] : A stored music document with its encoded file payload and annotations
//   - [Playlist] : A named, ordered reference list of sheet ids
//   - [SheetPatch] / [PlaylistPatch] : Partial field sets merged over existing records
//
// Both record types implement the [Record] interface providing identity, timestamps and validation.
// Records are plain JSON-taggable structs because the persistence layer serializes whole
// collections as JSON arrays; identity and timestamps are always assigned by the persistence
// service, never by callers.
package models
