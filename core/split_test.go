package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignWindow(t *testing.T) {
	tests := []struct {
		name     string
		window   string
		position int64
		size     int64
		boundary bool
		want     int
	}{
		{"cut at last delimiter", "12\n34\n5", 0, 20, false, 5},
		{"delimiter at end of full window", "12\n34\n", 0, 20, false, 5},
		{"delimiter right after full window", "12\n34", 0, 20, true, 5},
		{"record as long as the window", "123", 0, 20, true, 3},
		{"last window without newline", "12\n34", 10, 15, false, 5},
		{"last window with trailing newline", "12\n34\n", 10, 16, false, 5},
		{"last window single record", "7", 0, 1, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := alignWindow([]byte(tt.window), tt.position, tt.size, tt.boundary)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAlignWindowWithoutBoundary(t *testing.T) {
	_, err := alignWindow([]byte("123456"), 40, 100, false)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, int64(40), capErr.Offset)
	assert.Equal(t, 6, capErr.Budget)
}

func TestDelimiterAt(t *testing.T) {
	src := strings.NewReader("123\n4")
	buf := make([]byte, 1)

	tests := []struct {
		offset int64
		size   int64
		want   bool
	}{
		{3, 5, true},
		{2, 5, false},
		{5, 5, false},
		{9, 12, false}, // source shorter than announced
	}

	for _, tt := range tests {
		got, err := delimiterAt(src, buf, tt.offset, tt.size)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "offset %d", tt.offset)
	}
}

func TestParseWindowOffsets(t *testing.T) {
	keys, err := parseWindow(nil, []byte("10\n-2\n7"), 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, -2, 7}, keys)

	_, err = parseWindow(keys[:0], []byte("10\n2x\n7"), 100)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, int64(103), formatErr.Offset)
	assert.Equal(t, "2x", formatErr.Record)
}
