package numeric_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zmajoros/a65000asm/numeric"
)

func TestParse_Forms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"hex", "$ff", 0xff},
		{"hex_max_u32", "$ffffffff", 0xffffffff},
		{"binary", "%1010", 0b1010},
		{"decimal", "42", 42},
		{"decimal_negative", "-1", -1},
		{"decimal_min_i32", "-2147483648", -2147483648},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := numeric.Parse(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParse_OutOfRange(t *testing.T) {
	_, err := numeric.Parse("$100000000")
	require.ErrorIs(t, err, numeric.ErrOutOfRange)
}

func TestParse_InvalidFormat(t *testing.T) {
	_, err := numeric.Parse("not_a_number")
	require.ErrorIs(t, err, numeric.ErrInvalidFormat)
}

func TestParseUint32(t *testing.T) {
	v, err := numeric.ParseUint32("$1000")
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), v)
}
