package sarc

import "errors"

// Sentinel errors reported by Archive.Err.
var (
	// ErrNullData is returned when the archive buffer is nil.
	ErrNullData = errors.New("sarc: nil archive data")

	// ErrTooFewDataSize is returned when the buffer is shorter than the header.
	ErrTooFewDataSize = errors.New("sarc: archive data too short")

	// ErrDataCorrupted is returned when the magic number does not match.
	ErrDataCorrupted = errors.New("sarc: data corrupted or not an archive")

	// ErrUnsupportedVersion is returned for archive versions other than 1.
	ErrUnsupportedVersion = errors.New("sarc: unsupported archive version")

	// ErrRecordOutOfBounds is returned by strict validation when a record
	// points outside the archive buffer.
	ErrRecordOutOfBounds = errors.New("sarc: record out of bounds")
)
