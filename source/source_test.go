package source_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/sarc/core/testutil"
	"github.com/meigma/sarc/internal/sizing"
	"github.com/meigma/sarc/source"
)

func sampleArchive(t *testing.T) []byte {
	t.Helper()
	return testutil.BuildArchive(t,
		testutil.Entry{Name: "foo", Data: []byte("abc")},
		testutil.Entry{Name: "bar", Data: []byte("hello world"), Alignment: 8},
	)
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.sarc")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_LocalFile(t *testing.T) {
	t.Parallel()

	data := sampleArchive(t)
	path := writeTemp(t, data)

	tests := []struct {
		name     string
		location string
	}{
		{name: "plain path", location: path},
		{name: "file url", location: "file://" + filepath.ToSlash(path)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := source.Load(context.Background(), tt.location)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if string(got) != string(data) {
				t.Fatalf("Load() returned %d bytes, want %d", len(got), len(data))
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := source.Load(context.Background(), filepath.Join(t.TempDir(), "missing.sarc"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoad_HTTP(t *testing.T) {
	t.Parallel()

	data := sampleArchive(t)
	var gotHeader atomic.Value
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotHeader.Store(r.Header.Get("Authorization"))
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)

	got, err := source.Load(context.Background(), server.URL+"/archive.sarc",
		source.WithClient(server.Client()),
		source.WithHeader("Authorization", "Bearer token"),
	)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != string(data) {
		t.Fatal("Load() returned unexpected bytes")
	}
	if h, _ := gotHeader.Load().(string); h != "Bearer token" {
		t.Fatalf("Authorization header = %q, want %q", h, "Bearer token")
	}
}

func TestLoad_HTTPHeaders(t *testing.T) {
	t.Parallel()

	var gotHeader atomic.Value
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		gotHeader.Store(r.Header.Values("X-Test"))
		_, _ = w.Write([]byte("sarc"))
	}))
	t.Cleanup(server.Close)

	headers := nethttp.Header{}
	headers.Add("X-Test", "a")
	headers.Add("X-Test", "b")

	if _, err := source.Load(context.Background(), server.URL, source.WithHeaders(headers)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	values, _ := gotHeader.Load().([]string)
	if len(values) != 2 || values[0] != "a" || values[1] != "b" {
		t.Fatalf("X-Test values = %v, want [a b]", values)
	}
}

func TestLoad_HTTPStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		nethttp.Error(w, "gone", nethttp.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	if _, err := source.Load(context.Background(), server.URL); err == nil {
		t.Fatal("Load() expected error for 404 response")
	}
}

func TestLoad_HTTPCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write([]byte("sarc"))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := source.Load(ctx, server.URL)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_MaxSize(t *testing.T) {
	t.Parallel()

	data := sampleArchive(t)
	path := writeTemp(t, data)

	if _, err := source.Load(context.Background(), path, source.WithMaxSize(uint64(len(data)))); err != nil {
		t.Fatalf("Load() at limit error = %v", err)
	}
	_, err := source.Load(context.Background(), path, source.WithMaxSize(uint64(len(data)-1)))
	if !errors.Is(err, source.ErrTooLarge) {
		t.Fatalf("Load() error = %v, want ErrTooLarge", err)
	}

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)

	_, err = source.Load(context.Background(), server.URL, source.WithMaxSize(4))
	if !errors.Is(err, source.ErrTooLarge) {
		t.Fatalf("Load() over HTTP error = %v, want ErrTooLarge", err)
	}
}

func TestLoad_DefaultMaxSizeIsReadable(t *testing.T) {
	t.Parallel()

	if uint64(source.DefaultMaxSize) > uint64(math.MaxInt-1) {
		t.Fatalf("DefaultMaxSize = %d, exceeds the largest readable buffer %d", uint64(source.DefaultMaxSize), math.MaxInt-1)
	}
	data := sampleArchive(t)
	got, err := sizing.ReadAllWithLimit(bytes.NewReader(data), source.DefaultMaxSize, source.ErrTooLarge)
	if err != nil {
		t.Fatalf("ReadAllWithLimit(DefaultMaxSize) error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("ReadAllWithLimit(DefaultMaxSize) = %d bytes, want %d", len(got), len(data))
	}
}

func TestLoad_ExpectedDigest(t *testing.T) {
	t.Parallel()

	data := sampleArchive(t)
	path := writeTemp(t, data)

	tests := []struct {
		name     string
		expected digest.Digest
		wantErr  error
	}{
		{name: "sha256 match", expected: digest.FromBytes(data)},
		{name: "sha512 match", expected: digest.SHA512.FromBytes(data)},
		{name: "mismatch", expected: digest.FromString("other"), wantErr: source.ErrDigestMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := source.Load(context.Background(), path, source.WithExpectedDigest(tt.expected))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidDigest(t *testing.T) {
	t.Parallel()

	_, err := source.Load(context.Background(), writeTemp(t, sampleArchive(t)),
		source.WithExpectedDigest(digest.Digest("sha256:nothex")))
	if err == nil {
		t.Fatal("Load() expected error for malformed digest")
	}
}

func TestLoad_UnsupportedScheme(t *testing.T) {
	t.Parallel()

	_, err := source.Load(context.Background(), "ftp://example.com/archive.sarc")
	if !errors.Is(err, source.ErrUnsupportedScheme) {
		t.Fatalf("Load() error = %v, want ErrUnsupportedScheme", err)
	}
}
