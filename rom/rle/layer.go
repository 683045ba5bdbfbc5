package rle

import "fmt"

// Layer type bytes.
const (
	LayerRLE8  byte = 1
	LayerRLE16 byte = 2
)

// planes splits tiles into the low and high bytes of each element, the even and
// odd positions of the little-endian tile array.
func planes(tiles []uint16) (lo, hi []uint16) {
	lo = make([]uint16, len(tiles))
	hi = make([]uint16, len(tiles))
	for i, v := range tiles {
		lo[i] = v & 0xFF
		hi[i] = v >> 8
	}
	return lo, hi
}

// layerPlan estimates both codecs and returns the cheaper one with its tables.
func layerPlan(lo, hi []uint16) (Codec, JumpTable, JumpTable, int) {
	lo8, hi8 := RLE8.Table(lo), RLE8.Table(hi)
	lo16, hi16 := RLE16.Table(lo), RLE16.Table(hi)
	n8 := lo8.Length() + hi8.Length()
	n16 := lo16.Length() + hi16.Length()
	if n16 < n8 {
		return RLE16, lo16, hi16, 1 + n16
	}
	return RLE8, lo8, hi8, 1 + n8
}

// LayerCompressedLength returns len(CompressLayer(tiles)).
func LayerCompressedLength(tiles []uint16) int {
	_, _, _, n := layerPlan(planes(tiles))
	return n
}

// CompressLayer encodes a 16-bit tile layer as a type byte and two plane streams.
func CompressLayer(tiles []uint16) []byte {
	lo, hi := planes(tiles)
	c, tlo, thi, n := layerPlan(lo, hi)

	dst := make([]byte, 0, n)
	if c.opSize == 1 {
		dst = append(dst, LayerRLE8)
	} else {
		dst = append(dst, LayerRLE16)
	}
	dst = append(dst, c.encode(lo, tlo)...)
	return append(dst, c.encode(hi, thi)...)
}

// DecompressLayer decodes count tiles from a layer produced by CompressLayer.
func DecompressLayer(src []byte, count int) ([]uint16, error) {
	if len(src) == 0 {
		return nil, fmt.Errorf("layer: %w", ErrTruncated)
	}
	var c Codec
	switch src[0] {
	case LayerRLE8:
		c = RLE8
	case LayerRLE16:
		c = RLE16
	default:
		return nil, fmt.Errorf("layer: type 0x%02X: %w", src[0], ErrLayerType)
	}

	size := count * c.opSize
	lo, n, err := c.Decompress(src[1:], size)
	if err != nil {
		return nil, fmt.Errorf("layer low bytes: %w", err)
	}
	hi, _, err := c.Decompress(src[1+n:], size)
	if err != nil {
		return nil, fmt.Errorf("layer high bytes: %w", err)
	}

	tiles := make([]uint16, count)
	for i := range tiles {
		if lo[i] > 0xFF || hi[i] > 0xFF {
			return nil, fmt.Errorf("layer: tile %d: %w", i, ErrElementRange)
		}
		tiles[i] = hi[i]<<8 | lo[i]
	}
	return tiles, nil
}
