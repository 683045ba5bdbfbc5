package rle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayer_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 30 * 20, 0x1000} {
		tiles := randomElems(r, n, 0xFFFF)

		out := CompressLayer(tiles)
		require.Len(t, out, LayerCompressedLength(tiles))

		got, err := DecompressLayer(out, n)
		require.NoError(t, err)
		require.Len(t, got, n)
		if n > 0 {
			require.Equal(t, tiles, got)
		}
	}
}

func TestLayer_PicksSmallerCodec(t *testing.T) {
	// Short, noisy layers favour one-byte opcodes.
	noisy := []uint16{0x0102, 0x0304, 0x0506, 0x0708}
	require.Equal(t, LayerRLE8, CompressLayer(noisy)[0])

	// One huge run is far cheaper with 15-bit run lengths.
	flat := repeat(0x0041, 0x4000)
	out := CompressLayer(flat)
	require.Equal(t, LayerRLE16, out[0])
	require.Less(t, len(out), 32)

	got, err := DecompressLayer(out, len(flat))
	require.NoError(t, err)
	require.Equal(t, flat, got)
}

func TestLayer_Errors(t *testing.T) {
	_, err := DecompressLayer(nil, 4)
	require.ErrorIs(t, err, ErrTruncated)

	_, err = DecompressLayer([]byte{9, 0, 0}, 0)
	require.ErrorIs(t, err, ErrLayerType)

	// Low plane fills 4 tiles, high plane claims 5.
	_, err = DecompressLayer([]byte{LayerRLE8, 0x84, 1, 0, 0x85, 2, 0}, 4)
	require.ErrorIs(t, err, ErrOverrun)

	// RLE16 elements above a byte cannot belong to a plane.
	_, err = DecompressLayer([]byte{LayerRLE16, 0x80, 0x01, 0x01, 0x00, 0, 0, 0x80, 0x01, 0, 0, 0, 0}, 1)
	require.ErrorIs(t, err, ErrElementRange)
}
