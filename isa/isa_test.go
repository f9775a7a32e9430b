package isa_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zmajoros/a65000asm/isa"
)

func TestParseRegister(t *testing.T) {
	tests := []struct {
		in   string
		want isa.Register
	}{
		{"r0", isa.R0},
		{"r13", isa.R13},
		{"sp", isa.SP},
		{"pc", isa.PC},
	}
	for _, tc := range tests {
		got, ok := isa.ParseRegister(tc.in)
		require.True(t, ok, tc.in)
		require.Equal(t, tc.want, got)
	}
}

func TestParseRegister_Rejects(t *testing.T) {
	for _, in := range []string{"r14", "r", "rx", "d0"} {
		_, ok := isa.ParseRegister(in)
		require.False(t, ok, in)
	}
}

func TestPackWord_FieldLayout(t *testing.T) {
	w := isa.PackWord(isa.Register2, isa.RCTwoRegisters, 5, isa.OS8Bit)
	require.Equal(t, isa.Register2, isa.AddressingMode(w&0x1f))
	require.Equal(t, isa.RCTwoRegisters, isa.RegisterConfig((w>>5)&0x7))
	require.Equal(t, uint8(5), uint8((w>>8)&0x3f))
	require.Equal(t, isa.OS8Bit, isa.OpcodeSize((w>>14)&0x3))
}

func TestLookup_KnownAndUnknown(t *testing.T) {
	d, ok := isa.Lookup("mov")
	require.True(t, ok)
	require.True(t, d.SizeAllowed)
	require.True(t, d.AllowedModes[isa.Register2])

	_, ok = isa.Lookup("frobnicate")
	require.False(t, ok)
}

func TestIsBranch(t *testing.T) {
	require.True(t, isa.IsBranch("beq"))
	require.False(t, isa.IsBranch("mov"))
}

func TestPutWordLE(t *testing.T) {
	require.Equal(t, [2]byte{0x84, 0x0f}, isa.PutWordLE(0x0f84))
}

func TestOperandTypeString(t *testing.T) {
	require.Equal(t, "REGISTER", isa.OperandRegister.String())
	require.Equal(t, "REGISTER,INDIRECT_REGISTER", isa.OperandRegisterIndirectRegister.String())
	require.Equal(t, "UNKNOWN", isa.OperandType(9999).String())
}

func TestOpcodesAreUnique(t *testing.T) {
	seen := make(map[uint8]string)
	for name, d := range isa.Table {
		if other, ok := seen[d.Opcode]; ok {
			t.Fatalf("opcode %d assigned to both %q and %q", d.Opcode, other, name)
		}
		seen[d.Opcode] = name
	}
}
