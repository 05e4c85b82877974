// Package persist reads and writes an index as plain text, one
// "<key>:<value>;" record per line in ascending key order.
package persist

import (
	"errors"
	"fmt"
	"strings"
)

const (
	separator  = ":"
	terminator = ";"
)

// ErrAmbiguous marks a record whose key or value contains a separator,
// terminator or line break. Such a record is still written, but reading it
// back is not guaranteed to reproduce the original pair.
var ErrAmbiguous = errors.New("persist: record does not round-trip")

// EncodeRecord formats one record without the trailing newline. The line is
// always returned; err wraps ErrAmbiguous when the pair cannot be read back
// unchanged.
func EncodeRecord(key, value string) (string, error) {
	line := key + separator + value + terminator
	if field := ambiguousField(key, value); field != "" {
		return line, fmt.Errorf("%w: %s contains one of %q", ErrAmbiguous, field, separator+terminator+"\\n")
	}
	return line, nil
}

func ambiguousField(key, value string) string {
	const reserved = separator + terminator + "\r\n"
	switch {
	case strings.ContainsAny(key, reserved):
		return "key"
	case strings.ContainsAny(value, reserved):
		return "value"
	}
	return ""
}

// DecodeRecord splits a line into key and value. A line is valid only if it
// contains the separator; the key is everything before the first separator
// and the value everything after it, minus one trailing terminator.
func DecodeRecord(line string) (key, value string, ok bool) {
	line = strings.TrimSuffix(line, "\r")
	key, value, ok = strings.Cut(line, separator)
	if !ok {
		return "", "", false
	}
	value = strings.TrimSuffix(value, terminator)
	return key, value, true
}
