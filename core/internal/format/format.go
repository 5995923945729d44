// Package format holds the sarc wire layout.
//
// All multi-byte integers are big-endian. The archive starts with a 12-byte
// header (magic, version, file count) followed by one 4-byte record offset
// per file. Each record is a 12-byte head (body offset relative to the head,
// body size, alignment) followed by a NUL-terminated name.
package format

import "encoding/binary"

// Magic is the four-byte archive signature.
const Magic = "sarc"

// Version is the only archive version this package understands.
const Version uint32 = 1

// Header layout.
const (
	MagicOffset    = 0
	VersionOffset  = 4
	NumFilesOffset = 8
	HeaderSize     = 12
	OffsetSize     = 4
)

// Record head layout, relative to the record head.
const (
	BodyOffsetField = 0
	SizeField       = 4
	AlignmentField  = 8
	RecordHeadSize  = 12
)

// Uint32 decodes the big-endian value at b[off:off+4].
// The caller guarantees the range is in bounds.
func Uint32(b []byte, off uint64) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// OffsetTableEntry returns the absolute position of the i-th record offset.
func OffsetTableEntry(i uint32) uint64 {
	return HeaderSize + uint64(i)*OffsetSize
}
