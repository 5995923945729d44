// Package testutil provides helpers for building sarc archives in tests.
//
// The builders lay out bytes field by field, exactly as a conforming
// archive producer would, so tests can describe archives declaratively.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// Entry describes one file for BuildArchive.
type Entry struct {
	Name string
	Data []byte

	// Alignment is recorded in the record head and used to pad the body.
	// Zero means no padding and records 1.
	Alignment uint32
}

// Header returns a 12-byte archive header.
func Header(magic string, version, numFiles uint32) []byte {
	b := make([]byte, 12)
	copy(b, magic)
	binary.BigEndian.PutUint32(b[4:], version)
	binary.BigEndian.PutUint32(b[8:], numFiles)
	return b
}

// BuildArchive lays out a version 1 archive containing entries in order.
func BuildArchive(tb testing.TB, entries ...Entry) []byte {
	tb.Helper()

	out := Header("sarc", 1, uint32(len(entries))) //nolint:gosec // test sizes are small
	out = append(out, make([]byte, 4*len(entries))...)
	for i, e := range entries {
		align := e.Alignment
		if align == 0 {
			align = 1
		}
		head := len(out)
		binary.BigEndian.PutUint32(out[12+4*i:], uint32(head)) //nolint:gosec // test sizes are small

		out = append(out, make([]byte, 12)...)
		out = append(out, e.Name...)
		out = append(out, 0)
		for len(out)%int(align) != 0 {
			out = append(out, 0)
		}
		binary.BigEndian.PutUint32(out[head:], uint32(len(out)-head)) //nolint:gosec // test sizes are small
		binary.BigEndian.PutUint32(out[head+4:], uint32(len(e.Data))) //nolint:gosec // test sizes are small
		binary.BigEndian.PutUint32(out[head+8:], align)
		out = append(out, e.Data...)
	}
	return out
}

// PutUint32 overwrites the big-endian value at b[off:off+4].
func PutUint32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:], v)
}

// RecordHead returns the record head offset of the index-th file.
func RecordHead(b []byte, index int) int {
	return int(Uint32(b, 12+4*index))
}

// WriteFiles writes files into dir and returns their paths sorted by name.
func WriteFiles(tb testing.TB, dir string, files map[string][]byte) []string {
	tb.Helper()

	paths := make([]string, 0, len(files))
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			tb.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, content, 0o644); err != nil { //nolint:gosec // test files
			tb.Fatalf("write %s: %v", p, err)
		}
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Uint32 reads the big-endian value at b[off:off+4].
func Uint32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off:])
}
