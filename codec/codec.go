// Package codec converts keys and values to and from the text used in
// persisted records.
package codec

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformed is wrapped by every Decode failure.
var ErrMalformed = errors.New("codec: malformed text")

// Codec encodes T as text and decodes it back. Decode must reject text it
// cannot parse instead of guessing.
type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

// Func adapts a pair of functions to Codec.
type Func[T any] struct {
	EncodeFunc func(T) (string, error)
	DecodeFunc func(string) (T, error)
}

func (f Func[T]) Encode(v T) (string, error) { return f.EncodeFunc(v) }
func (f Func[T]) Decode(s string) (T, error) { return f.DecodeFunc(s) }

type stringCodec struct{}

func (stringCodec) Encode(v string) (string, error) { return v, nil }
func (stringCodec) Decode(s string) (string, error) { return s, nil }

// String passes text through unchanged.
func String() Codec[string] { return stringCodec{} }

// Int encodes base-10 ints.
func Int() Codec[int] {
	return Func[int]{
		EncodeFunc: func(v int) (string, error) { return strconv.Itoa(v), nil },
		DecodeFunc: func(s string) (int, error) {
			v, err := strconv.Atoi(s)
			if err != nil {
				return 0, malformed("int", s, err)
			}
			return v, nil
		},
	}
}

// Int64 encodes base-10 int64s.
func Int64() Codec[int64] {
	return Func[int64]{
		EncodeFunc: func(v int64) (string, error) { return strconv.FormatInt(v, 10), nil },
		DecodeFunc: func(s string) (int64, error) {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return 0, malformed("int64", s, err)
			}
			return v, nil
		},
	}
}

// Uint64 encodes base-10 uint64s.
func Uint64() Codec[uint64] {
	return Func[uint64]{
		EncodeFunc: func(v uint64) (string, error) { return strconv.FormatUint(v, 10), nil },
		DecodeFunc: func(s string) (uint64, error) {
			v, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return 0, malformed("uint64", s, err)
			}
			return v, nil
		},
	}
}

// Float64 encodes float64s in the shortest form that round-trips.
func Float64() Codec[float64] {
	return Func[float64]{
		EncodeFunc: func(v float64) (string, error) { return strconv.FormatFloat(v, 'g', -1, 64), nil },
		DecodeFunc: func(s string) (float64, error) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, malformed("float64", s, err)
			}
			return v, nil
		},
	}
}

// Bool encodes "true" and "false".
func Bool() Codec[bool] {
	return Func[bool]{
		EncodeFunc: func(v bool) (string, error) { return strconv.FormatBool(v), nil },
		DecodeFunc: func(s string) (bool, error) {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return false, malformed("bool", s, err)
			}
			return v, nil
		},
	}
}

func malformed(kind, s string, err error) error {
	return fmt.Errorf("%w: %q is not a valid %s: %v", ErrMalformed, s, kind, err)
}
