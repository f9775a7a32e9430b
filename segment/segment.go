// Package segment implements the address-anchored byte buffers the
// assembler emits code and data into. A Segment is opened by a `.pc`
// directive; bytes are appended during the forward pass and patched
// in place once forward label references resolve.
package segment

import "fmt"

// Segment is a contiguous run of output bytes anchored at Base.
// Segment.Data[i] represents the byte at address Base+i.
type Segment struct {
	Base uint32
	Data []byte
}

// New opens a segment at the given base address.
func New(base uint32) *Segment {
	return &Segment{Base: base}
}

// PC returns the address one past the last byte currently in the
// segment — the address the next append will occupy.
func (s *Segment) PC() uint32 {
	return s.Base + uint32(len(s.Data))
}

// Contains reports whether addr falls within the segment's occupied
// range.
func (s *Segment) Contains(addr uint32) bool {
	return addr >= s.Base && addr < s.Base+uint32(len(s.Data))
}

// AppendByte appends a single byte and advances PC by 1.
func (s *Segment) AppendByte(v byte) {
	s.Data = append(s.Data, v)
}

// AppendWord appends a little-endian 16-bit value and advances PC by 2.
func (s *Segment) AppendWord(v uint16) {
	s.Data = append(s.Data, byte(v), byte(v>>8))
}

// AppendDword appends a little-endian 32-bit value and advances PC by 4.
func (s *Segment) AppendDword(v uint32) {
	s.Data = append(s.Data, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// AppendBytes appends a raw byte slice unchanged (used by .text/.textz).
func (s *Segment) AppendBytes(b []byte) {
	s.Data = append(s.Data, b...)
}

// PatchByte overwrites a single byte at addr.
func (s *Segment) PatchByte(addr uint32, v byte) error {
	i, err := s.offset(addr, 1)
	if err != nil {
		return err
	}
	s.Data[i] = v
	return nil
}

// PatchWord overwrites a little-endian 16-bit value at addr.
func (s *Segment) PatchWord(addr uint32, v uint16) error {
	i, err := s.offset(addr, 2)
	if err != nil {
		return err
	}
	s.Data[i] = byte(v)
	s.Data[i+1] = byte(v >> 8)
	return nil
}

// PatchDword overwrites a little-endian 32-bit value at addr.
func (s *Segment) PatchDword(addr uint32, v uint32) error {
	i, err := s.offset(addr, 4)
	if err != nil {
		return err
	}
	s.Data[i] = byte(v)
	s.Data[i+1] = byte(v >> 8)
	s.Data[i+2] = byte(v >> 16)
	s.Data[i+3] = byte(v >> 24)
	return nil
}

func (s *Segment) offset(addr uint32, n uint32) (uint32, error) {
	if addr < s.Base || addr+n > s.Base+uint32(len(s.Data)) {
		return 0, fmt.Errorf("patch site $%08x..$%08x outside segment $%08x..$%08x",
			addr, addr+n, s.Base, s.Base+uint32(len(s.Data)))
	}
	return addr - s.Base, nil
}

// List is the ordered set of segments an assembly run produced.
type List []*Segment

// Find returns the segment containing addr, or nil if none does.
// Overlap between segments is not checked anywhere; if two segments
// contain addr, the earlier one in the list is returned.
func (l List) Find(addr uint32) *Segment {
	for _, s := range l {
		if s.Contains(addr) {
			return s
		}
	}
	return nil
}
