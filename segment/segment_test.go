package segment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zmajoros/a65000asm/segment"
)

func TestAppendAdvancesPC(t *testing.T) {
	s := segment.New(0x1000)
	s.AppendByte(1)
	require.Equal(t, uint32(0x1001), s.PC())
	s.AppendWord(2)
	require.Equal(t, uint32(0x1003), s.PC())
	s.AppendDword(3)
	require.Equal(t, uint32(0x1007), s.PC())
}

func TestLittleEndianEncoding(t *testing.T) {
	s := segment.New(0)
	s.AppendWord(0x1234)
	require.Equal(t, []byte{0x34, 0x12}, s.Data)

	s2 := segment.New(0)
	s2.AppendDword(0x12345678)
	require.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, s2.Data)
}

func TestContains(t *testing.T) {
	s := segment.New(0x2000)
	s.AppendDword(0)
	require.True(t, s.Contains(0x2000))
	require.True(t, s.Contains(0x2003))
	require.False(t, s.Contains(0x2004))
	require.False(t, s.Contains(0x1fff))
}

func TestPatchInPlace(t *testing.T) {
	s := segment.New(0x3000)
	s.AppendDword(0)
	require.NoError(t, s.PatchWord(0x3000, 0xbeef))
	require.Equal(t, []byte{0xef, 0xbe, 0x00, 0x00}, s.Data)
}

func TestPatchOutOfBoundsFails(t *testing.T) {
	s := segment.New(0x4000)
	s.AppendByte(0)
	require.Error(t, s.PatchWord(0x4000, 1))
}

func TestListFind(t *testing.T) {
	a := segment.New(0x1000)
	a.AppendDword(0)
	b := segment.New(0x2000)
	b.AppendDword(0)
	list := segment.List{a, b}

	require.Same(t, b, list.Find(0x2002))
	require.Nil(t, list.Find(0x5000))
}
