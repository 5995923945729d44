package sarc

import (
	sarccore "github.com/meigma/sarc/core"
	"github.com/meigma/sarc/source"
)

// Errors re-exported from core.
var (
	// ErrNullData is returned when the archive buffer is nil.
	ErrNullData = sarccore.ErrNullData

	// ErrTooFewDataSize is returned when the buffer is shorter than the header.
	ErrTooFewDataSize = sarccore.ErrTooFewDataSize

	// ErrDataCorrupted is returned when the magic number does not match.
	ErrDataCorrupted = sarccore.ErrDataCorrupted

	// ErrUnsupportedVersion is returned for archive versions other than 1.
	ErrUnsupportedVersion = sarccore.ErrUnsupportedVersion

	// ErrRecordOutOfBounds is returned by strict validation for records outside the buffer.
	ErrRecordOutOfBounds = sarccore.ErrRecordOutOfBounds
)

// Errors re-exported from source.
var (
	// ErrDigestMismatch is returned when loaded bytes do not match the expected digest.
	ErrDigestMismatch = source.ErrDigestMismatch

	// ErrUnsupportedScheme is returned for locations that are neither paths nor http(s) URLs.
	ErrUnsupportedScheme = source.ErrUnsupportedScheme

	// ErrTooLarge is returned when an archive exceeds the configured size limit.
	ErrTooLarge = source.ErrTooLarge
)
