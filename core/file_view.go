package sarc

import (
	"bytes"
	_ "crypto/sha256" // digest.Canonical

	"github.com/opencontainers/go-digest"
)

// FileView is a read-only view of one file in an archive.
//
// The byte slices returned by Data and NameBytes alias the archive buffer
// and must be treated as immutable. The zero value is an invalid view.
type FileView struct {
	body      []byte
	name      []byte
	size      uint32
	alignment uint32
}

// Valid reports whether the view refers to a file.
func (v FileView) Valid() bool {
	return v.body != nil
}

// Data returns the file body, or nil for an invalid view.
// A valid zero-size file returns a non-nil empty slice.
func (v FileView) Data() []byte {
	if !v.Valid() {
		return nil
	}
	return v.body
}

// NameBytes returns the file name bytes without the NUL terminator,
// or nil for an invalid view.
func (v FileView) NameBytes() []byte {
	if !v.Valid() {
		return nil
	}
	return v.name
}

// Name returns the file name as a string.
func (v FileView) Name() string {
	if !v.Valid() {
		return ""
	}
	return string(v.name)
}

// Size returns the body length in bytes.
func (v FileView) Size() uint32 {
	if !v.Valid() {
		return 0
	}
	return v.size
}

// Alignment returns the body alignment recorded by the archive producer.
// Readers do not need it to locate the body.
func (v FileView) Alignment() uint32 {
	if !v.Valid() {
		return 0
	}
	return v.alignment
}

// Reader returns a reader over the file body.
func (v FileView) Reader() *bytes.Reader {
	return bytes.NewReader(v.Data())
}

// Digest returns the SHA-256 digest of the file body.
// It returns the empty digest for an invalid view.
func (v FileView) Digest() digest.Digest {
	if !v.Valid() {
		return ""
	}
	return digest.FromBytes(v.body)
}
