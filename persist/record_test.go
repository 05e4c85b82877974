package persist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRecord(t *testing.T) {
	t.Parallel()

	line, err := EncodeRecord("k1", "v1")
	require.NoError(t, err)
	assert.Equal(t, "k1:v1;", line)

	line, err = EncodeRecord("", "")
	require.NoError(t, err)
	assert.Equal(t, ":;", line)
}

func TestEncodeRecordFlagsReservedCharacters(t *testing.T) {
	t.Parallel()

	cases := []struct{ key, value, line string }{
		{"a:b", "v", "a:b:v;"},
		{"a;b", "v", "a;b:v;"},
		{"k", "x:y", "k:x:y;"},
		{"k", "x;", "k:x;;"},
		{"k", "multi\nline", "k:multi\nline;"},
		{"k\r", "v", "k\r:v;"},
	}
	for _, tc := range cases {
		line, err := EncodeRecord(tc.key, tc.value)
		assert.Equal(t, tc.line, line, "line is written unchanged")
		assert.True(t, errors.Is(err, ErrAmbiguous), "expected %q/%q to be flagged, got %v", tc.key, tc.value, err)
	}
}

func TestDecodeRecord(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line       string
		key, value string
		ok         bool
	}{
		{"k1:v1;", "k1", "v1", true},
		{"k1:v1", "k1", "v1", true},
		{"k1:v1;\r", "k1", "v1", true},
		{"k1:;", "k1", "", true},
		{":v;", "", "v", true},
		{"k:x:y;", "k", "x:y", true},
		{"k:x;;", "k", "x;", true},
		{"no separator;", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		key, value, ok := DecodeRecord(tc.line)
		assert.Equal(t, tc.ok, ok, "line %q", tc.line)
		assert.Equal(t, tc.key, key, "line %q", tc.line)
		assert.Equal(t, tc.value, value, "line %q", tc.line)
	}
}
