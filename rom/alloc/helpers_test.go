package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

// newImage returns a zeroed image of size bytes with [free, free+n) set to filler.
func newImage(size, free, n int) *rom.Image {
	data := make([]byte, size)
	format.Fill(data[free : free+n])
	return rom.New(data)
}

// testOptions places from address zero and never grows.
func testOptions() Options {
	return Options{GrowStep: -1}
}

func dataChunk(payload []byte, align bool) *Chunk {
	return &Chunk{Kind: KindData, Payload: payload, Align: align}
}

func seqOf(t testing.TB, chunks ...*Chunk) *Sequence {
	t.Helper()
	s, err := NewSequence(chunks, nil, nil)
	require.NoError(t, err)
	return s
}

// requireChunk checks that a valid chunk carrying want sits at a.
func requireChunk(t testing.TB, img *rom.Image, a rom.Address, want []byte) {
	t.Helper()
	c, err := rom.ChunkAt(img.Bytes(), a)
	require.NoError(t, err)
	require.Equal(t, want, c.Payload)
}
