package container_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zmajoros/a65000asm/container"
	"github.com/zmajoros/a65000asm/segment"
)

func TestWriteReadRoundTrip(t *testing.T) {
	segs := segment.List{
		{Base: 0x1000, Data: []byte{0x01, 0x02, 0x03}},
		{Base: 0x2000, Data: []byte{0xaa, 0xbb}},
	}

	var buf bytes.Buffer
	require.NoError(t, container.Write(&buf, segs))

	got, err := container.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, segs, got)
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := container.Read(bytes.NewReader([]byte("NOPE")))
	require.Error(t, err)
}

func TestWriteMagicPrefix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, container.Write(&buf, nil))
	require.Equal(t, []byte("RSX0"), buf.Bytes()[:4])
}
