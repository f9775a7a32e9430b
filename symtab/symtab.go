// Package symtab tracks label definitions and the addresses that refer
// to them before they're known. A single forward pass can't resolve a
// branch to a label defined further down the source, so every such
// reference is queued as a PatchSite and settled once the whole file
// has been read.
package symtab

import (
	"fmt"

	"github.com/zmajoros/a65000asm/segment"
)

// Table maps label names to the address they were defined at.
type Table struct {
	symbols map[string]uint32
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{symbols: make(map[string]uint32)}
}

// Define records name at addr. It fails if the name was already
// defined, since the grammar has no notion of redefinition or scope.
func (t *Table) Define(name string, addr uint32) error {
	if _, ok := t.symbols[name]; ok {
		return fmt.Errorf("duplicate label %q", name)
	}
	t.symbols[name] = addr
	return nil
}

// Lookup returns the address bound to name, if any.
func (t *Table) Lookup(name string) (uint32, bool) {
	addr, ok := t.symbols[name]
	return addr, ok
}

// All returns a copy of every defined symbol and its address, for
// diagnostics such as the CLI's --dump flag. Callers must not rely on
// any particular order.
func (t *Table) All() map[string]uint32 {
	out := make(map[string]uint32, len(t.symbols))
	for name, addr := range t.symbols {
		out[name] = addr
	}
	return out
}

// PatchSite is a location in the output that needs a symbol's address
// written into it once the symbol is known. Width is the field size in
// bytes (2 for a relative branch displacement, 4 for an absolute
// address). Line and Text identify the source line for diagnostics.
type PatchSite struct {
	Address    uint32
	Width      int
	IsRelative bool
	Line       int
	Text       string
}

// Queue holds patch sites grouped by the symbol name they wait on.
type Queue struct {
	sites map[string][]PatchSite
}

// NewQueue returns an empty patch queue.
func NewQueue() *Queue {
	return &Queue{sites: make(map[string][]PatchSite)}
}

// Defer records that site needs name's address once resolution runs.
func (q *Queue) Defer(name string, site PatchSite) {
	q.sites[name] = append(q.sites[name], site)
}

// Resolve walks every deferred site, looks its symbol up in t, and
// writes the resolved value into the segment that owns the site's
// address. It collects and returns every error encountered rather than
// stopping at the first, so a single assemble reports all undefined
// labels and out-of-range fixups at once.
func (q *Queue) Resolve(t *Table, segs segment.List) []error {
	var errs []error

	for name, sites := range q.sites {
		addr, ok := t.Lookup(name)
		if !ok {
			for _, site := range sites {
				errs = append(errs, fmt.Errorf("line %d: undefined label %q: %s", site.Line, name, site.Text))
			}
			continue
		}

		for _, site := range sites {
			if err := resolveSite(site, addr, segs); err != nil {
				errs = append(errs, fmt.Errorf("line %d: %w: %s", site.Line, err, site.Text))
			}
		}
	}

	return errs
}

func resolveSite(site PatchSite, symbolAddr uint32, segs segment.List) error {
	seg := segs.Find(site.Address)
	if seg == nil {
		return fmt.Errorf("patch site $%08x is not in any segment", site.Address)
	}

	var value int64
	if site.IsRelative {
		// site.Address is where the 2-byte displacement itself lives,
		// two bytes past the instruction word it belongs to. The
		// hardware's PC-relative arithmetic is anchored on the word's
		// own address, so back up by 2 before applying it.
		instrBase := int64(site.Address) - 2
		value = int64(symbolAddr) - instrBase + 2
	} else {
		value = int64(symbolAddr)
	}

	switch site.Width {
	case 1:
		if value < 0 || value > 0xff {
			return fmt.Errorf("symbol value %d out of unsigned 8-bit range", value)
		}
		return seg.PatchByte(site.Address, byte(value))
	case 2:
		if site.IsRelative {
			if value < -32768 || value > 32767 {
				return fmt.Errorf("branch displacement %d out of signed 16-bit range", value)
			}
			return seg.PatchWord(site.Address, uint16(int16(value)))
		}
		if value < 0 || value > 0xffff {
			return fmt.Errorf("symbol value %d out of unsigned 16-bit range", value)
		}
		return seg.PatchWord(site.Address, uint16(value))
	case 4:
		if value < 0 || value > 0xffffffff {
			return fmt.Errorf("symbol value %d out of unsigned 32-bit range", value)
		}
		return seg.PatchDword(site.Address, uint32(value))
	default:
		return fmt.Errorf("unsupported patch width %d", site.Width)
	}
}
