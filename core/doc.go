// Package sarc provides read-only, zero-copy access to sarc archives.
//
// A sarc archive is a single contiguous byte buffer: a 12-byte header
// (magic "sarc", version, file count), a table of absolute record offsets,
// and one record per file holding the body offset, size, alignment and a
// NUL-terminated name.
//
// [New] validates the header once and returns an [Archive]. Queries on an
// archive that failed validation degrade to empty results instead of
// returning errors; check [Archive.Result] or [Archive.Err] after
// construction.
//
// Every [FileView] aliases the buffer passed to [New]. Callers must not
// modify that buffer while the archive or any view derived from it is in use.
//
// [Cursor] walks files by position with random-access arithmetic, and
// [NewFS] exposes an archive through io/fs.
package sarc
