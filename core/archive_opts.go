package sarc

import "log/slog"

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the logger used to report rejected archives and records.
// A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// WithStrictValidation makes New decode every file record and report
// RecordOutOfBounds if any offset, name, or body lies outside the buffer.
//
// Without it, New only checks the header and File reports a malformed
// record as an invalid FileView when it is accessed.
func WithStrictValidation() Option {
	return func(a *Archive) {
		a.strict = true
	}
}
