// Package sarc provides read-only access to sarc archives.
//
// A sarc archive is a single contiguous buffer holding a fixed header, a
// table of 32-bit record offsets, and one record per file. Each record
// carries the file's body location, size, alignment, and NUL-terminated
// name. All integers are big-endian.
//
// This package provides the high-level API: [Open] loads an archive from a
// path or URL, and [Extract] writes archive files into a directory. The
// zero-copy accessor itself lives in the [core] subpackage and is
// re-exported here.
//
// # Quick Start
//
// Open an archive and read a file:
//
//	a, err := sarc.Open(ctx, "actors.sarc")
//	if err != nil {
//	    return err
//	}
//	view := a.Find("Actor/Link.bfres")
//	if !view.Valid() {
//	    return fs.ErrNotExist
//	}
//	data := view.Data()
//
// Walk every file with a cursor:
//
//	for c := a.Begin(); c.Less(a.End()); c.Increment() {
//	    fmt.Println(c.File().Name())
//	}
//
// Extract everything into a directory:
//
//	stats, err := sarc.Extract(ctx, a, "./out", nil)
//
// # Validation
//
// Opening an archive only checks the header. Record bounds are checked
// on every access, and a record that does not fit the buffer yields an
// invalid [FileView]. Use [OpenWithStrictValidation] to reject such
// archives up front.
package sarc
