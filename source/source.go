package source

import (
	"context"
	_ "crypto/sha256" // digest algorithms
	_ "crypto/sha512"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	nethttp "net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/sarc/internal/sizing"
)

// DefaultMaxSize bounds the bytes read from a location. Record offsets are
// 32-bit, so larger archives cannot be addressed anyway. On 32-bit platforms
// the limit is the largest buffer a slice can hold.
const DefaultMaxSize = min(4<<30, math.MaxInt-1)

// Sentinel errors.
var (
	// ErrDigestMismatch is returned when loaded bytes do not match the expected digest.
	ErrDigestMismatch = errors.New("sarc: digest mismatch")

	// ErrUnsupportedScheme is returned for locations that are neither paths nor http(s) URLs.
	ErrUnsupportedScheme = errors.New("sarc: unsupported location scheme")

	// ErrTooLarge is returned when the archive exceeds the configured size limit.
	ErrTooLarge = errors.New("sarc: archive too large")
)

type config struct {
	client   *nethttp.Client
	headers  nethttp.Header
	maxSize  uint64
	expected digest.Digest
	logger   *slog.Logger
}

// Load reads the archive at location into memory.
//
// location is a local path, a file:// URL, or an http:// or https:// URL.
func Load(ctx context.Context, location string, opts ...Option) ([]byte, error) {
	cfg := config{
		client:  nethttp.DefaultClient,
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.client == nil {
		cfg.client = nethttp.DefaultClient
	}
	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	data, err := fetch(ctx, location, &cfg)
	if err != nil {
		return nil, err
	}

	if cfg.expected != "" {
		if err := verify(data, cfg.expected); err != nil {
			return nil, fmt.Errorf("load %s: %w", location, err)
		}
	}

	log.Debug("archive loaded", "location", location, "size", len(data))
	return data, nil
}

func fetch(ctx context.Context, location string, cfg *config) ([]byte, error) {
	u, err := url.Parse(location)
	// Single-letter schemes are Windows drive letters.
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return readFile(location, cfg)
	}
	switch u.Scheme {
	case "file":
		return readFile(filepath.FromSlash(u.Path), cfg)
	case "http", "https":
		return readHTTP(ctx, u.String(), cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func readFile(path string, cfg *config) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := sizing.ReadAllWithLimit(f, cfg.maxSize, ErrTooLarge)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func readHTTP(ctx context.Context, rawURL string, cfg *config) ([]byte, error) {
	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, rawURL, nethttp.NoBody)
	if err != nil {
		return nil, err
	}
	for key, values := range cfg.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := cfg.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != nethttp.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10)) //nolint:errcheck // drain for connection reuse
		return nil, fmt.Errorf("get %s: unexpected status %s", rawURL, resp.Status)
	}
	if resp.ContentLength > 0 && uint64(resp.ContentLength) > cfg.maxSize {
		return nil, fmt.Errorf("get %s: %w", rawURL, ErrTooLarge)
	}

	data, err := sizing.ReadAllWithLimit(resp.Body, cfg.maxSize, ErrTooLarge)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	return data, nil
}

func verify(data []byte, expected digest.Digest) error {
	if err := expected.Validate(); err != nil {
		return err
	}
	if got := expected.Algorithm().FromBytes(data); got != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrDigestMismatch, expected, got)
	}
	return nil
}
