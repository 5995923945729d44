package sarc_test

import (
	"bytes"
	"context"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sarc"
	"github.com/meigma/sarc/core/testutil"
)

func sampleEntries() []testutil.Entry {
	return []testutil.Entry{
		{Name: "Actor/Link.bfres", Data: []byte("link model"), Alignment: 8},
		{Name: "readme.txt", Data: []byte("hello")},
		{Name: "empty", Data: []byte{}},
	}
}

func writeArchive(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sarc")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestOpen_LocalFile(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, sampleEntries()...)
	a, err := sarc.Open(context.Background(), writeArchive(t, data))
	require.NoError(t, err)

	assert.Equal(t, sarc.Succeeded, a.Result())
	assert.Equal(t, uint32(3), a.NumFiles())
	assert.Equal(t, "link model", string(a.Find("Actor/Link.bfres").Data()))
	assert.Equal(t, "hello", string(a.File(1).Data()))
}

func TestOpen_HTTP(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, sampleEntries()...)
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Header.Get("X-Token") != "secret" {
			w.WriteHeader(nethttp.StatusForbidden)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)

	_, err := sarc.Open(context.Background(), server.URL, sarc.OpenWithHTTPClient(server.Client()))
	require.Error(t, err)

	a, err := sarc.Open(context.Background(), server.URL,
		sarc.OpenWithHTTPClient(server.Client()),
		sarc.OpenWithHeader("X-Token", "secret"),
	)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), a.NumFiles())
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	valid := testutil.BuildArchive(t, sampleEntries()...)

	// Record 0 body runs past the end of the buffer.
	broken := testutil.BuildArchive(t, sampleEntries()...)
	testutil.PutUint32(broken, testutil.RecordHead(broken, 0)+4, 1<<20)

	tests := []struct {
		name    string
		data    []byte
		opts    []sarc.OpenOption
		wantErr error
	}{
		{
			name:    "too short",
			data:    []byte("sarc"),
			wantErr: sarc.ErrTooFewDataSize,
		},
		{
			name:    "bad magic",
			data:    testutil.Header("cras", 1, 0),
			wantErr: sarc.ErrDataCorrupted,
		},
		{
			name:    "unsupported version",
			data:    testutil.Header("sarc", 2, 0),
			wantErr: sarc.ErrUnsupportedVersion,
		},
		{
			name:    "strict rejects out of bounds record",
			data:    broken,
			opts:    []sarc.OpenOption{sarc.OpenWithStrictValidation()},
			wantErr: sarc.ErrRecordOutOfBounds,
		},
		{
			name:    "digest mismatch",
			data:    valid,
			opts:    []sarc.OpenOption{sarc.OpenWithExpectedDigest(digest.FromString("nope"))},
			wantErr: sarc.ErrDigestMismatch,
		},
		{
			name:    "size limit",
			data:    valid,
			opts:    []sarc.OpenOption{sarc.OpenWithMaxSize(8)},
			wantErr: sarc.ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := sarc.Open(context.Background(), writeArchive(t, tt.data), tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, a)
		})
	}
}

func TestOpen_LenientKeepsBrokenRecordsInvalid(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, sampleEntries()...)
	testutil.PutUint32(data, testutil.RecordHead(data, 0)+4, 1<<20)

	a, err := sarc.Open(context.Background(), writeArchive(t, data))
	require.NoError(t, err)
	assert.False(t, a.File(0).Valid())
	assert.True(t, a.File(1).Valid())
}

func TestOpen_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := sarc.Open(context.Background(), writeArchive(t, testutil.Header("cras", 1, 0)),
		sarc.OpenWithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "archive loaded")
	assert.Contains(t, buf.String(), "archive rejected")
}
