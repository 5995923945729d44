package sarc

import (
	"bytes"
	"iter"
	"log/slog"

	"github.com/meigma/sarc/core/internal/format"
	"github.com/meigma/sarc/internal/sizing"
)

// ParseResult reports the outcome of archive validation.
// Every value other than Succeeded is a failure.
type ParseResult uint8

const (
	// Succeeded means the archive header is valid.
	Succeeded ParseResult = iota

	// NullData means the archive buffer is nil.
	NullData

	// TooFewDataSize means the buffer is shorter than the 12-byte header.
	TooFewDataSize

	// DataCorrupted means the buffer does not start with the "sarc" magic.
	DataCorrupted

	// UnsupportedVersion means the archive version is not 1.
	UnsupportedVersion

	// RecordOutOfBounds means a file record points outside the buffer.
	// Only reported when the archive was created with WithStrictValidation.
	RecordOutOfBounds
)

// String returns the human-readable name of the result.
func (r ParseResult) String() string {
	switch r {
	case Succeeded:
		return "succeeded"
	case NullData:
		return "null data"
	case TooFewDataSize:
		return "too few data size"
	case DataCorrupted:
		return "data corrupted"
	case UnsupportedVersion:
		return "unsupported version"
	case RecordOutOfBounds:
		return "record out of bounds"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error matching r, or nil for Succeeded.
func (r ParseResult) Err() error {
	switch r {
	case Succeeded:
		return nil
	case NullData:
		return ErrNullData
	case TooFewDataSize:
		return ErrTooFewDataSize
	case DataCorrupted:
		return ErrDataCorrupted
	case UnsupportedVersion:
		return ErrUnsupportedVersion
	default:
		return ErrRecordOutOfBounds
	}
}

// Archive provides read-only access to the files of a sarc archive.
//
// The archive borrows the buffer passed to New and never copies it. Views
// returned by File, Find, and cursors alias that buffer, so it must not be
// modified while any of them are in use.
//
// An Archive is immutable after New returns and is safe for concurrent use.
type Archive struct {
	data   []byte
	result ParseResult
	strict bool
	logger *slog.Logger
}

// New validates data as a sarc archive.
//
// New never fails; the outcome is available from Result. When validation
// fails, NumFiles returns 0 and every lookup returns an invalid FileView.
func New(data []byte, opts ...Option) *Archive {
	a := &Archive{data: data}
	for _, opt := range opts {
		opt(a)
	}
	a.result = a.parse()
	if a.result != Succeeded {
		a.log().Debug("archive rejected", "result", a.result.String(), "size", len(data))
	}
	return a
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

func (a *Archive) parse() ParseResult {
	switch {
	case a.data == nil:
		return NullData
	case len(a.data) < format.HeaderSize:
		return TooFewDataSize
	case string(a.data[format.MagicOffset:format.MagicOffset+len(format.Magic)]) != format.Magic:
		return DataCorrupted
	case format.Uint32(a.data, format.VersionOffset) != format.Version:
		return UnsupportedVersion
	}

	if a.strict {
		n := format.Uint32(a.data, format.NumFilesOffset)
		for i := range n {
			if _, reason := a.decode(i); reason != "" {
				a.log().Debug("record rejected", "index", i, "reason", reason)
				return RecordOutOfBounds
			}
		}
	}
	return Succeeded
}

// Result returns the validation outcome recorded by New.
func (a *Archive) Result() ParseResult {
	return a.result
}

// Err returns nil if the archive is valid, or the sentinel error describing
// why validation failed.
func (a *Archive) Err() error {
	return a.result.Err()
}

// Data returns the buffer the archive was created from.
func (a *Archive) Data() []byte {
	return a.data
}

// NumFiles returns the number of files in the archive.
// It returns 0 if validation failed.
func (a *Archive) NumFiles() uint32 {
	if a.result != Succeeded {
		return 0
	}
	return format.Uint32(a.data, format.NumFilesOffset)
}

// File returns the index-th file of the archive.
//
// The returned view is invalid if validation failed, index is out of range,
// or the file's record does not fit inside the archive buffer.
func (a *Archive) File(index uint32) FileView {
	if a.result != Succeeded || index >= a.NumFiles() {
		return FileView{}
	}
	view, reason := a.decode(index)
	if reason != "" {
		a.log().Debug("file record out of bounds", "index", index, "reason", reason)
	}
	return view
}

// Find returns the first file whose name equals name byte for byte.
//
// Find scans the records in order and completes in O(n) time. It returns
// an invalid view if validation failed, name is empty, or no file matches.
func (a *Archive) Find(name string) FileView {
	if a.result != Succeeded || name == "" {
		return FileView{}
	}
	for _, view := range a.Files() {
		if view.Valid() && string(view.name) == name {
			return view
		}
	}
	return FileView{}
}

// Files returns an iterator over all files in archive order.
//
// Iteration stops at the end of the offset table. When the header claims
// more files than the buffer has offset slots for, the missing records are
// not yielded; File reports each of them as invalid.
func (a *Archive) Files() iter.Seq2[uint32, FileView] {
	return func(yield func(uint32, FileView) bool) {
		for i := range a.readableRecords() {
			if !yield(i, a.File(i)) {
				return
			}
		}
	}
}

// Begin returns a cursor positioned at the first file.
func (a *Archive) Begin() Cursor {
	return Cursor{archive: a}
}

// End returns a cursor positioned one past the last file.
func (a *Archive) End() Cursor {
	return Cursor{archive: a, index: a.NumFiles()}
}

// readableRecords returns how many offset slots fit inside the buffer,
// capped at NumFiles. Records past this count can never decode.
func (a *Archive) readableRecords() uint32 {
	n := a.NumFiles()
	if n == 0 {
		return 0
	}
	slots := (uint64(len(a.data)) - format.HeaderSize) / format.OffsetSize
	return uint32(min(uint64(n), slots)) //nolint:gosec // bounded by n
}

// decode reads the index-th record. A non-empty reason means the record
// does not fit inside the buffer and the returned view is invalid.
func (a *Archive) decode(index uint32) (FileView, string) {
	slot := format.OffsetTableEntry(index)
	if !sizing.InBounds(slot, format.OffsetSize, len(a.data)) {
		return FileView{}, "offset table truncated"
	}

	head := uint64(format.Uint32(a.data, slot))
	if !sizing.InBounds(head, format.RecordHeadSize, len(a.data)) {
		return FileView{}, "record head out of bounds"
	}
	bodyRel := uint64(format.Uint32(a.data, head+format.BodyOffsetField))
	size := format.Uint32(a.data, head+format.SizeField)
	alignment := format.Uint32(a.data, head+format.AlignmentField)

	nameStart := head + format.RecordHeadSize
	nameLen := bytes.IndexByte(a.data[nameStart:], 0)
	if nameLen < 0 {
		return FileView{}, "name not terminated"
	}
	nameEnd := nameStart + uint64(nameLen)

	// head and bodyRel are both 32-bit, so the sum cannot overflow.
	bodyStart := head + bodyRel
	if !sizing.InBounds(bodyStart, uint64(size), len(a.data)) {
		return FileView{}, "body out of bounds"
	}
	bodyEnd := bodyStart + uint64(size)

	return FileView{
		body:      a.data[bodyStart:bodyEnd:bodyEnd],
		name:      a.data[nameStart:nameEnd:nameEnd],
		size:      size,
		alignment: alignment,
	}, ""
}
