package sizing

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOverflow = errors.New("overflow")

func TestInBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		off  uint64
		n    uint64
		size int
		want bool
	}{
		{"empty at start", 0, 0, 0, true},
		{"whole buffer", 0, 10, 10, true},
		{"tail", 6, 4, 10, true},
		{"empty at end", 10, 0, 10, true},
		{"one past", 7, 4, 10, false},
		{"start past end", 11, 0, 10, false},
		{"overflow", math.MaxUint64, 2, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, InBounds(tt.off, tt.n, tt.size))
		})
	}
}

func TestReadAllWithLimit(t *testing.T) {
	t.Parallel()

	data, err := ReadAllWithLimit(bytes.NewReader([]byte("abcd")), 4, errOverflow)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), data)

	_, err = ReadAllWithLimit(bytes.NewReader([]byte("abcde")), 4, errOverflow)
	assert.ErrorIs(t, err, errOverflow)
}
