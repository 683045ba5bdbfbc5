package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

func TestSequence_States(t *testing.T) {
	a := dataChunk([]byte{1}, false)
	b := dataChunk([]byte{2}, false)
	m := &Chunk{Kind: KindManifest}

	s, err := NewSequence([]*Chunk{a, b}, m, PointerTable)
	require.NoError(t, err)
	require.Equal(t, EmittingData, s.State())

	c, err := s.Current()
	require.NoError(t, err)
	require.Same(t, a, c)
	s.Placed(c, 0x100)

	c, err = s.Current()
	require.NoError(t, err)
	require.Same(t, b, c)
	s.Placed(c, 0x200)
	require.Equal(t, EmittingManifest, s.State())

	c, err = s.Current()
	require.NoError(t, err)
	require.Same(t, m, c)
	require.Equal(t, []byte{0x08, 0x01, 0x00, 0x08, 0x08, 0x02, 0x00, 0x08}, m.Payload)
	s.Placed(c, 0x300)
	require.Equal(t, Done, s.State())

	c, err = s.Current()
	require.NoError(t, err)
	require.Nil(t, c)

	s.Reset()
	require.Equal(t, EmittingData, s.State())
	require.Empty(t, s.Addrs())
	require.Nil(t, m.Payload)
}

func TestSequence_Empty(t *testing.T) {
	s, err := NewSequence(nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, Done, s.State())

	s, err = NewSequence(nil, &Chunk{Kind: KindManifest}, PointerTable)
	require.NoError(t, err)
	require.Equal(t, EmittingManifest, s.State())
}

func TestSequence_Validation(t *testing.T) {
	_, err := NewSequence(nil, &Chunk{Kind: KindManifest}, nil)
	require.Error(t, err)

	big := dataChunk(make([]byte, format.MaxChunkPayload+1), false)
	_, err = NewSequence([]*Chunk{big}, nil, nil)
	require.ErrorIs(t, err, rom.ErrOversized)

	// The prefix counts toward the limit.
	edge := &Chunk{Kind: KindManifest, Payload: make([]byte, format.MaxChunkPayload)}
	require.ErrorIs(t, edge.Validate(), rom.ErrOversized)
	edge.Payload = edge.Payload[1:]
	require.NoError(t, edge.Validate())
}

func TestRunSource_Manifest(t *testing.T) {
	img := newImage(0x200, 0x10, 0x1F0)
	palette := dataChunk([]byte{0x11, 0x22}, true)
	tiles := dataChunk([]byte{0x33, 0x44, 0x55}, true)
	manifest := &Chunk{Kind: KindManifest, Align: true}

	seq, err := NewSequence([]*Chunk{palette, tiles}, manifest, PointerTable)
	require.NoError(t, err)

	placed, err := NewDriver(testOptions()).RunSource(img, seq)
	require.NoError(t, err)
	require.Len(t, placed, 3)
	require.Same(t, manifest, placed[2].Chunk)

	c, err := rom.ChunkAt(img.Bytes(), placed[2].Addr)
	require.NoError(t, err)
	require.Equal(t, byte(ManifestVersion), c.Payload[0])
	for i, p := range placed[:2] {
		ptr := format.ReadU32(c.Payload, 1+i*format.PointerSize)
		got, err := rom.FromPointer(ptr)
		require.NoError(t, err)
		require.Equal(t, p.PayloadAddr(), got)
	}
}

func TestRunSource_ManifestError(t *testing.T) {
	img := newImage(0x100, 0x10, 0xF0)
	boom := func([]rom.Address) ([]byte, error) { return nil, rom.ErrBadAddress }

	seq, err := NewSequence([]*Chunk{dataChunk([]byte{1}, false)}, &Chunk{Kind: KindManifest}, boom)
	require.NoError(t, err)

	_, err = NewDriver(testOptions()).RunSource(img, seq)
	require.ErrorIs(t, err, rom.ErrBadAddress)
}
