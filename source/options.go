package source

import (
	"log/slog"
	nethttp "net/http"

	"github.com/opencontainers/go-digest"
)

// Option configures Load.
type Option func(*config)

// WithClient sets the HTTP client used for http(s) locations.
func WithClient(client *nethttp.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// WithHeaders sets additional headers on HTTP requests.
func WithHeaders(headers nethttp.Header) Option {
	return func(c *config) {
		if headers == nil {
			return
		}
		c.headers = headers.Clone()
	}
}

// WithHeader sets a single header on HTTP requests.
func WithHeader(key, value string) Option {
	return func(c *config) {
		if c.headers == nil {
			c.headers = make(nethttp.Header)
		}
		c.headers.Set(key, value)
	}
}

// WithMaxSize limits the archive size in bytes.
func WithMaxSize(limit uint64) Option {
	return func(c *config) {
		c.maxSize = limit
	}
}

// WithExpectedDigest verifies the loaded bytes against d and fails with
// ErrDigestMismatch when they differ.
func WithExpectedDigest(d digest.Digest) Option {
	return func(c *config) {
		c.expected = d
	}
}

// WithLogger sets the logger used to report loads.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
