package space

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

func blank(n int) []byte {
	b := make([]byte, n)
	format.Fill(b)
	return b
}

func putChunk(t *testing.T, data []byte, off int, payload []byte) {
	t.Helper()
	require.NoError(t, format.PutChunkHeader(data, off, len(payload)))
	copy(data[off+format.ChunkHeaderSize:], payload)
}

func TestNext_WholeImageFree(t *testing.T) {
	s := New(blank(64), 0)
	r, ok, err := s.Next(0, 16)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Region{Addr: 0, Size: 64}, r)
	require.Equal(t, rom.Address(64), r.End())
}

func TestNext_SkipsValidChunks(t *testing.T) {
	data := blank(64)
	// The payload is all filler, yet it belongs to the chunk.
	putChunk(t, data, 8, blank(24))

	s := New(data, 0)
	regions, err := s.Regions(1)
	require.NoError(t, err)
	require.Equal(t, []Region{
		{Addr: 0, Size: 8},
		{Addr: 40, Size: 24},
	}, regions)
}

func TestNext_NonFillerBreaksRuns(t *testing.T) {
	data := blank(32)
	data[10] = 0x00
	data[11] = 0x12

	s := New(data, 0)
	r, ok, err := s.Next(0, 11)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Region{Addr: 12, Size: 20}, r)

	_, ok, err = s.Next(0, 21)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNext_RespectsFloorAndCeiling(t *testing.T) {
	s := &Scanner{Data: blank(128), Floor: 32, Ceiling: 96}
	r, ok, err := s.Next(0, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Region{Addr: 32, Size: 64}, r)

	r, ok, err = s.Next(40, 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Region{Addr: 40, Size: 56}, r)
}

func TestNext_ReportsCorruptHeader(t *testing.T) {
	data := blank(64)
	copy(data[16:], "STAR\x08\x00\x00\x00")

	_, _, err := New(data, 0).Next(0, 32)
	require.ErrorIs(t, err, rom.ErrCorrupt)

	// A truncated header at EOF is corruption too.
	data = blank(20)
	copy(data[16:], "STAR")
	_, _, err = New(data, 0).Next(0, 32)
	require.ErrorIs(t, err, rom.ErrCorrupt)
}

func TestNext_ReturnsEarlierRunBeforeCorruption(t *testing.T) {
	data := blank(64)
	copy(data[40:], "STAR\x08\x00\x00\x00")

	r, ok, err := New(data, 0).Next(0, 16)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Region{Addr: 0, Size: 40}, r)
}

func TestSummary(t *testing.T) {
	data := blank(100)
	putChunk(t, data, 10, make([]byte, 10))
	data[50] = 0

	st, err := New(data, 0).Summary()
	require.NoError(t, err)
	require.Equal(t, 3, st.Regions)
	require.Equal(t, 10+22+49, st.Free)
	require.Equal(t, Region{Addr: 51, Size: 49}, st.Largest)
}
