// Package storage implements the persistence layer for the sheet library.
//
// The layer has two halves:
//   - [Backend] : The durable key-value medium. [SQLiteBackend] persists across
//     runs via a single key-value table; [MemoryBackend] backs tests and
//     ephemeral sessions.
//   - [Service] : Sole authority over the two ordered collections (sheets,
//     playlists). All mutations pass through it, and every mutation
//     re-serializes the whole affected collection to the backend before the
//     in-memory copy is committed.
//
// Whole-collection rewrite costs O(collection size) per mutation. Collections
// stay small, and the durable format remains a plain JSON array per key with
// no delta log to replay.
package storage
