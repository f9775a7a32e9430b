package asm_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zmajoros/a65000asm/asm"
)

// assembleAndMatchHex assembles src, concatenates every emitted
// segment's bytes in order, and compares against expectedHex.
func assembleAndMatchHex(t *testing.T, src, expectedHex string) {
	t.Helper()

	expectedHex = strings.ToLower(strings.Join(strings.Fields(expectedHex), ""))
	expected, err := hex.DecodeString(expectedHex)
	require.NoError(t, err)

	segs, err := asm.New().Assemble(src)
	require.NoError(t, err)

	var got []byte
	for _, seg := range segs {
		got = append(got, seg.Data...)
	}
	require.Equal(t, expected, got)
}

func TestNop(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\nnop\n")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	require.Equal(t, uint32(0x1000), segs[0].Base)
	require.Len(t, segs[0].Data, 2)
	require.Equal(t, byte(0x00), segs[0].Data[0])
}

func TestMovRegisterToRegister(t *testing.T) {
	// REGISTER2 (4) | 2REGISTERS (4)<<5 | mov's table opcode (15)<<8 | OS_32BIT (0)<<14 = 0x0F84
	assembleAndMatchHex(t, ".pc = $2000\nmov r0, r1", "84 0F 01")
}

func TestBackwardBranchDisplacement(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $3000\nloop: inc r2\nbne loop\n")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	data := segs[0].Data
	require.Len(t, data, 7)
	// RELATIVE(0x11) | RCNone(0)<<5 | bne's table opcode(40=0x28)<<8 | OS_16BIT(1)<<14 = 0x6811,
	// forced regardless of the (nonexistent) size suffix since the displacement is 16 bits.
	require.Equal(t, []byte{0x11, 0x68}, data[3:5])
	// bne's displacement field is the last two bytes, anchored on its word at $3003: $3000 - $3003 + 2 = -1
	require.Equal(t, []byte{0xff, 0xff}, data[5:7])
}

func TestJmpDirect32Bit(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $4000\njmp $12345678\n")
	require.NoError(t, err)
	data := segs[0].Data
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, data[len(data)-4:])
}

func TestMovByteImmediateInRange(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $5000\nmov.b r0, $ff\n")
	require.NoError(t, err)
	data := segs[0].Data
	require.Equal(t, byte(0x00), data[2]) // register selector: r0
	require.Equal(t, byte(0xff), data[3]) // immediate byte
}

func TestMovByteImmediateOutOfRange(t *testing.T) {
	_, err := asm.New().Assemble(".pc = $5000\nmov.b r0, $100\n")
	require.Error(t, err)
	var asmErr *asm.Error
	require.ErrorAs(t, err, &asmErr)
	require.Equal(t, asm.SymbolOutOfRange, asmErr.Kind)
}

func TestForwardReferenceAcrossSegments(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $6000\nmov r0, target\n.pc = $7000\ntarget:\n")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	first := segs[0].Data
	require.Equal(t, []byte{0x00, 0x70, 0x00, 0x00}, first[len(first)-4:])
}

func TestSymbolsExposesResolvedLabels(t *testing.T) {
	a := asm.New()
	_, err := a.Assemble(".pc = $6000\nmov r0, target\n.pc = $7000\ntarget:\n")
	require.NoError(t, err)
	require.Equal(t, map[string]uint32{"target": 0x7000}, a.Symbols())
}

func TestEmptySourceYieldsNoSegments(t *testing.T) {
	segs, err := asm.New().Assemble("")
	require.NoError(t, err)
	require.Empty(t, segs)
}

func TestDuplicateLabel(t *testing.T) {
	_, err := asm.New().Assemble(".pc = $1000\nfoo:\nfoo:\n")
	var asmErr *asm.Error
	require.ErrorAs(t, err, &asmErr)
	require.Equal(t, asm.DuplicateLabel, asmErr.Kind)
}

func TestMissingSegment(t *testing.T) {
	_, err := asm.New().Assemble("nop\n")
	var asmErr *asm.Error
	require.ErrorAs(t, err, &asmErr)
	require.Equal(t, asm.MissingSegment, asmErr.Kind)
}

func TestInvalidMnemonic(t *testing.T) {
	_, err := asm.New().Assemble(".pc = $1000\nfrobnicate r0\n")
	var asmErr *asm.Error
	require.ErrorAs(t, err, &asmErr)
	require.Equal(t, asm.InvalidMnemonic, asmErr.Kind)
}

func TestInvalidAddressingModeForMnemonic(t *testing.T) {
	// SXB only accepts a bare register operand.
	_, err := asm.New().Assemble(".pc = $1000\nsxb [r0]\n")
	var asmErr *asm.Error
	require.ErrorAs(t, err, &asmErr)
	require.Equal(t, asm.InvalidAddressingMode, asmErr.Kind)
}

func TestSizeSuffixRejectedWhenNotAllowed(t *testing.T) {
	_, err := asm.New().Assemble(".pc = $1000\nnop.b\n")
	var asmErr *asm.Error
	require.ErrorAs(t, err, &asmErr)
	require.Equal(t, asm.InvalidSizeSpecifier, asmErr.Kind)
}

func TestTextDirectivePreservesCase(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\n.text \"Hi\"\n")
	require.NoError(t, err)
	require.Equal(t, []byte("Hi"), segs[0].Data)
}

func TestTextzAppendsAsciiZero(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\n.textz \"Hi\"\n")
	require.NoError(t, err)
	require.Equal(t, []byte("Hi0"), segs[0].Data)
}

func TestDefWithSymbolExpression(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\nbase:\n.def offset = base + 4\n.dword offset\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x10, 0x00, 0x00}, segs[0].Data)
}

func TestByteWordDwordLiterals(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\n.byte $ff\n.word $1234\n.dword $12345678\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0x34, 0x12, 0x78, 0x56, 0x34, 0x12}, segs[0].Data)
}

func TestIndirectRegisterPostIncrement(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\npop [r3]+\n")
	require.NoError(t, err)
	require.Len(t, segs[0].Data, 3)
	require.Equal(t, byte(3), segs[0].Data[2])
}

func TestPushConstImmediate(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\npush.w $10\n")
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0x00}, segs[0].Data[2:4])
}

func TestSyscall(t *testing.T) {
	segs, err := asm.New().Assemble(".pc = $1000\nsys $1, $2\n")
	require.NoError(t, err)
	data := segs[0].Data
	require.Equal(t, []byte{0x01, 0x00}, data[2:4])
	require.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, data[4:8])
}
