package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zmajoros/a65000asm/segment"
	"github.com/zmajoros/a65000asm/symtab"
)

func TestDefineAndLookup(t *testing.T) {
	tbl := symtab.NewTable()
	require.NoError(t, tbl.Define("loop", 0x3000))

	addr, ok := tbl.Lookup("loop")
	require.True(t, ok)
	require.Equal(t, uint32(0x3000), addr)
}

func TestAllReturnsEveryDefinedSymbol(t *testing.T) {
	tbl := symtab.NewTable()
	require.NoError(t, tbl.Define("loop", 0x3000))
	require.NoError(t, tbl.Define("done", 0x3010))

	all := tbl.All()
	require.Equal(t, map[string]uint32{"loop": 0x3000, "done": 0x3010}, all)

	// The returned map is a copy; mutating it must not affect the table.
	all["loop"] = 0
	addr, ok := tbl.Lookup("loop")
	require.True(t, ok)
	require.Equal(t, uint32(0x3000), addr)
}

func TestDuplicateDefineFails(t *testing.T) {
	tbl := symtab.NewTable()
	require.NoError(t, tbl.Define("loop", 0x3000))
	require.Error(t, tbl.Define("loop", 0x4000))
}

func TestResolveAbsolutePatch(t *testing.T) {
	seg := segment.New(0x6000)
	seg.AppendDword(0) // reserved field for the forward reference

	tbl := symtab.NewTable()
	q := symtab.NewQueue()
	q.Defer("target", symtab.PatchSite{Address: 0x6000, Width: 4, Line: 1, Text: "mov r0, target"})

	require.NoError(t, tbl.Define("target", 0x7000))
	errs := q.Resolve(tbl, segment.List{seg})
	require.Empty(t, errs)
	require.Equal(t, []byte{0x00, 0x70, 0x00, 0x00}, seg.Data)
}

func TestResolveRelativePatch(t *testing.T) {
	// loop: inc r2 (3 bytes at $3000) ; bne loop (word at $3003, displacement at $3005)
	seg := segment.New(0x3000)
	seg.AppendByte(0)                 // inc r2 word low byte (placeholder content, irrelevant here)
	seg.AppendByte(0)                 // inc r2 word high byte
	seg.AppendByte(0)                 // inc r2 register selector
	seg.AppendWord(0)                 // bne loop instruction word
	seg.AppendWord(0)                 // reserved displacement field at $3005

	tbl := symtab.NewTable()
	require.NoError(t, tbl.Define("loop", 0x3000))

	q := symtab.NewQueue()
	q.Defer("loop", symtab.PatchSite{Address: 0x3005, Width: 2, IsRelative: true, Line: 2, Text: "bne loop"})

	errs := q.Resolve(tbl, segment.List{seg})
	require.Empty(t, errs)
	require.Equal(t, []byte{0xff, 0xff}, seg.Data[5:7])
}

func TestResolveUndefinedLabel(t *testing.T) {
	seg := segment.New(0x1000)
	seg.AppendDword(0)

	tbl := symtab.NewTable()
	q := symtab.NewQueue()
	q.Defer("missing", symtab.PatchSite{Address: 0x1000, Width: 4, Line: 3, Text: "mov r0, missing"})

	errs := q.Resolve(tbl, segment.List{seg})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "undefined label")
}

func TestResolveOutOfRangeRelative(t *testing.T) {
	seg := segment.New(0x0000)
	seg.AppendWord(0)
	seg.AppendWord(0) // displacement field at $0002

	tbl := symtab.NewTable()
	require.NoError(t, tbl.Define("far", 0x10000))

	q := symtab.NewQueue()
	q.Defer("far", symtab.PatchSite{Address: 0x0002, Width: 2, IsRelative: true, Line: 1, Text: "bra far"})

	errs := q.Resolve(tbl, segment.List{seg})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "range")
}
