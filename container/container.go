// Package container reads and writes the RSX0 file format: the
// on-disk shape of an assembled segment list. It knows nothing about
// instructions or symbols — it only serializes/deserializes the byte
// buffers the asm package produces.
package container

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zmajoros/a65000asm/segment"
)

var magic = [4]byte{'R', 'S', 'X', '0'}

// Write serializes segs as magic + a run of (address, length, data)
// records, all little-endian, in the order they appear in segs.
func Write(w io.Writer, segs segment.List) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(magic[:]); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}

	for _, seg := range segs {
		var hdr [8]byte
		binary.LittleEndian.PutUint32(hdr[0:4], seg.Base)
		binary.LittleEndian.PutUint32(hdr[4:8], uint32(len(seg.Data)))
		if _, err := bw.Write(hdr[:]); err != nil {
			return fmt.Errorf("writing segment header at $%08x: %w", seg.Base, err)
		}
		if _, err := bw.Write(seg.Data); err != nil {
			return fmt.Errorf("writing segment data at $%08x: %w", seg.Base, err)
		}
	}

	return bw.Flush()
}

// Read deserializes an RSX0 stream back into a segment list.
func Read(r io.Reader) (segment.List, error) {
	br := bufio.NewReader(r)

	var got [4]byte
	if _, err := io.ReadFull(br, got[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("not an RSX0 container (got magic %q)", got)
	}

	var segs segment.List
	for {
		var hdr [8]byte
		_, err := io.ReadFull(br, hdr[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading segment header: %w", err)
		}

		base := binary.LittleEndian.Uint32(hdr[0:4])
		length := binary.LittleEndian.Uint32(hdr[4:8])

		data := make([]byte, length)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("reading %d bytes of segment data at $%08x: %w", length, base, err)
		}

		segs = append(segs, &segment.Segment{Base: base, Data: data})
	}

	return segs, nil
}
