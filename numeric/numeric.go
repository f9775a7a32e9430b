// Package numeric parses the assembler's three literal forms — hex,
// binary, and signed decimal — with 32-bit overflow checking.
package numeric

import (
	"errors"
	"strconv"
)

// ErrInvalidFormat is returned when the text is neither hex, binary,
// nor decimal.
var ErrInvalidFormat = errors.New("invalid number format")

// ErrOutOfRange is returned when the parsed value doesn't fit in the
// signed/unsigned 32-bit range the assembler allows literals to occupy.
var ErrOutOfRange = errors.New("value out of range")

// Parse converts a literal token — "$ff", "%1010", "-12", "42" — into
// its 32-bit value, returned as an int64 so callers can still see
// whether the source was negative before truncating to bits.
func Parse(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidFormat
	}

	var (
		digits string
		base   int
	)
	switch s[0] {
	case '$':
		digits, base = s[1:], 16
	case '%':
		digits, base = s[1:], 2
	default:
		digits, base = s, 10
	}
	if digits == "" {
		return 0, ErrInvalidFormat
	}

	if base == 10 {
		v, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, ErrInvalidFormat
		}
		if v < -(1<<31) || v > (1<<32)-1 {
			return 0, ErrOutOfRange
		}
		return v, nil
	}

	// Hex and binary literals are unsigned by grammar (no leading sign
	// is accepted for $ or %).
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	if v > (1<<32)-1 {
		return 0, ErrOutOfRange
	}
	return int64(v), nil
}

// ParseUint32 is a convenience wrapper for callers that only ever want
// the truncated 32-bit bit pattern, such as directive data lists.
func ParseUint32(s string) (uint32, error) {
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
