// Package tasks orchestrates batch library operations with real-time progress reporting.
//
// The [Engine] wraps the application store with two multi-file operations:
//
//  1. [Engine.Import] : Validate, encode and add a batch of files
//     - Each file is checked against the upload allow-list and size limit
//     - Rejected files are reported per-file and never abort the batch
//     - Accepted files become sheets via the store's add action
//
//  2. [Engine.ExportAll] : Decode every stored sheet back to disk
//     - Reverses the data-URI payload encoding byte-for-byte
//     - Handles partial failures gracefully and reports them per-sheet
//
// Both operations emit [ProgressUpdate] values on an optional channel using
// select with default, so a slow or absent consumer never blocks the work.
package tasks
