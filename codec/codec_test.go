package codec

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRejectsMalformedText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		dec  func(string) error
		in   string
	}{
		{"int", func(s string) error { _, err := Int().Decode(s); return err }, "12a"},
		{"int empty", func(s string) error { _, err := Int().Decode(s); return err }, ""},
		{"int64", func(s string) error { _, err := Int64().Decode(s); return err }, "9223372036854775808"},
		{"uint64", func(s string) error { _, err := Uint64().Decode(s); return err }, "-1"},
		{"float64", func(s string) error { _, err := Float64().Decode(s); return err }, "1.2.3"},
		{"bool", func(s string) error { _, err := Bool().Decode(s); return err }, "yes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.dec(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)
		})
	}
}

func TestNumericCodecs(t *testing.T) {
	t.Parallel()

	s, err := Int().Encode(-42)
	require.NoError(t, err)
	assert.Equal(t, "-42", s)
	v, err := Int().Decode("-42")
	require.NoError(t, err)
	assert.Equal(t, -42, v)

	s, err = Uint64().Encode(math.MaxUint64)
	require.NoError(t, err)
	u, err := Uint64().Decode(s)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u)

	s, err = Float64().Encode(0.1)
	require.NoError(t, err)
	assert.Equal(t, "0.1", s)

	b, err := Bool().Decode("true")
	require.NoError(t, err)
	assert.True(t, b)
}

func TestStringIsIdentity(t *testing.T) {
	t.Parallel()

	s, err := String().Encode("a b:c;")
	require.NoError(t, err)
	assert.Equal(t, "a b:c;", s)
	d, err := String().Decode(s)
	require.NoError(t, err)
	assert.Equal(t, "a b:c;", d)
}

func TestFuncAdapter(t *testing.T) {
	t.Parallel()

	hex := Func[int]{
		EncodeFunc: func(v int) (string, error) { return strconv.FormatInt(int64(v), 16), nil },
		DecodeFunc: func(s string) (int, error) {
			v, err := strconv.ParseInt(s, 16, 0)
			return int(v), err
		},
	}
	var c Codec[int] = hex
	s, err := c.Encode(255)
	require.NoError(t, err)
	assert.Equal(t, "ff", s)
	v, err := c.Decode("ff")
	require.NoError(t, err)
	assert.Equal(t, 255, v)
}
