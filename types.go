package sarc

import sarccore "github.com/meigma/sarc/core"

// --- Re-exports from core ---

// Archive is a parsed, read-only view over a sarc buffer.
type Archive = sarccore.Archive

// FileView is a borrowed view of one archived file.
type FileView = sarccore.FileView

// Cursor is a random-access position within an archive.
type Cursor = sarccore.Cursor

// ParseResult is the outcome of header parsing.
type ParseResult = sarccore.ParseResult

// Option configures core archive parsing.
type Option = sarccore.Option

// FS exposes an archive as an fs.FS.
type FS = sarccore.FS

// ParseResult constants.
const (
	Succeeded          = sarccore.Succeeded
	NullData           = sarccore.NullData
	TooFewDataSize     = sarccore.TooFewDataSize
	DataCorrupted      = sarccore.DataCorrupted
	UnsupportedVersion = sarccore.UnsupportedVersion
	RecordOutOfBounds  = sarccore.RecordOutOfBounds
)

// Constructors re-exported from core.
var (
	New   = sarccore.New
	NewFS = sarccore.NewFS
)

// Options re-exported from core.
var (
	WithLogger           = sarccore.WithLogger
	WithStrictValidation = sarccore.WithStrictValidation
)
