// Package upload implements the file acceptance boundary for the sheet library.
//
// Files enter the library only through this package: the MIME type must be on
// the fixed allow-list (PDF, PNG, JPG) and the byte size at most 10 MiB, with
// the check inclusive of the boundary. Accepted files are converted to a
// self-describing data URI (data:<mime>;base64,<payload>) before being handed
// to the persistence layer; [Decode] reverses the encoding byte-for-byte.
//
// Validation failures carry human-readable, per-file messages and are meant
// to be collected rather than to abort batch processing.
package upload
