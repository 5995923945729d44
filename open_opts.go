package sarc

import (
	"log/slog"
	nethttp "net/http"

	"github.com/opencontainers/go-digest"

	sarccore "github.com/meigma/sarc/core"
	"github.com/meigma/sarc/source"
)

// OpenOption configures Open.
type OpenOption func(*openConfig)

type openConfig struct {
	source []source.Option
	core   []sarccore.Option
	logger *slog.Logger
}

// OpenWithLogger sets the logger for loading and parsing.
func OpenWithLogger(logger *slog.Logger) OpenOption {
	return func(c *openConfig) {
		c.logger = logger
	}
}

// OpenWithStrictValidation rejects archives whose records do not fit the
// buffer, instead of reporting them as invalid views on access.
func OpenWithStrictValidation() OpenOption {
	return func(c *openConfig) {
		c.core = append(c.core, sarccore.WithStrictValidation())
	}
}

// OpenWithExpectedDigest verifies the archive bytes against d before parsing.
func OpenWithExpectedDigest(d digest.Digest) OpenOption {
	return func(c *openConfig) {
		c.source = append(c.source, source.WithExpectedDigest(d))
	}
}

// OpenWithMaxSize limits the archive size in bytes.
func OpenWithMaxSize(limit uint64) OpenOption {
	return func(c *openConfig) {
		c.source = append(c.source, source.WithMaxSize(limit))
	}
}

// OpenWithHTTPClient sets the client used for http(s) locations.
func OpenWithHTTPClient(client *nethttp.Client) OpenOption {
	return func(c *openConfig) {
		c.source = append(c.source, source.WithClient(client))
	}
}

// OpenWithHeader adds a header to HTTP requests.
func OpenWithHeader(key, value string) OpenOption {
	return func(c *openConfig) {
		c.source = append(c.source, source.WithHeader(key, value))
	}
}
