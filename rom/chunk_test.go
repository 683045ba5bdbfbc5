package rom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/romkit/internal/format"
)

func TestChunkAt_Valid(t *testing.T) {
	data := blank(64)
	putChunk(t, data, 8, []byte{1, 2, 3, 4})

	c, err := ChunkAt(data, 8)
	require.NoError(t, err)
	require.Equal(t, Address(8), c.Addr)
	require.Equal(t, Address(16), c.PayloadAddr())
	require.Equal(t, 12, c.Size())
	require.Equal(t, Address(20), c.End())
	require.Equal(t, []byte{1, 2, 3, 4}, c.Payload)
}

func TestChunkAt_Errors(t *testing.T) {
	data := blank(64)

	_, err := ChunkAt(data, 0)
	require.ErrorIs(t, err, ErrNoChunk)

	copy(data[16:], "STAR\x04\x00\x00\x00")
	_, err = ChunkAt(data, 16)
	require.ErrorIs(t, err, ErrCorrupt)
	require.ErrorIs(t, err, format.ErrComplement)

	var ce *CorruptionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, Address(16), ce.Addr)

	putChunk(t, data, 32, make([]byte, 16))
	_, err = ChunkAt(data[:40], 32)
	require.ErrorIs(t, err, ErrCorrupt)
	require.ErrorIs(t, err, format.ErrTruncated)
}

func TestFindChunk(t *testing.T) {
	data := blank(256)
	copy(data[4:], "STAR\x01\x02\x03\x04") // bogus header, skipped
	putChunk(t, data, 32, []byte{0xA1})
	putChunk(t, data, 64, []byte{0xB2, 0x00})

	c, err := FindChunk(data, 0, nil)
	require.NoError(t, err)
	require.Equal(t, Address(32), c.Addr)

	c, err = FindChunk(data, 0, func(c Chunk) bool { return c.Payload[0] == 0xB2 })
	require.NoError(t, err)
	require.Equal(t, Address(64), c.Addr)

	c, err = FindChunk(data, 33, nil)
	require.NoError(t, err)
	require.Equal(t, Address(64), c.Addr)

	_, err = FindChunk(data, 65, nil)
	require.ErrorIs(t, err, ErrNoChunk)
}

func TestChunks_Iterate(t *testing.T) {
	data := blank(128)
	putChunk(t, data, 0, []byte{1})
	putChunk(t, data, 20, make([]byte, 10))
	putChunk(t, data, 100, nil)

	var addrs []Address
	it := Chunks(data, 0)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		addrs = append(addrs, c.Addr)
	}
	require.NoError(t, it.Err())
	require.Equal(t, []Address{0, 20, 100}, addrs)
}

func TestChunks_StopsOnCorruption(t *testing.T) {
	data := blank(64)
	putChunk(t, data, 0, []byte{1})
	copy(data[16:], "STAR\x10\x00\x10\x00")

	it := Chunks(data, 0)
	_, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	require.ErrorIs(t, it.Err(), ErrCorrupt)
}
