package rle

import "fmt"

// minRun is the shortest run emitted as a run opcode.
const minRun = 3

// Codec is one parameterization of the run-length scheme.
type Codec struct {
	name   string
	opSize int    // opcode and element width in bytes
	limit  int    // largest run or span one opcode can express
	high   uint16 // run flag
}

var (
	// RLE8 uses 1-byte opcodes and elements.
	RLE8 = Codec{name: "rle8", opSize: 1, limit: 0x7F, high: 0x80}

	// RLE16 uses 2-byte big-endian opcodes and elements.
	RLE16 = Codec{name: "rle16", opSize: 2, limit: 0x7FFF, high: 0x8000}
)

// String returns the codec name.
func (c Codec) String() string { return c.name }

// OpcodeSize returns the opcode (and element) width in bytes.
func (c Codec) OpcodeSize() int { return c.opSize }

// JumpLimit returns the longest run or span a single opcode can encode.
func (c Codec) JumpLimit() int { return c.limit }

// MaxElement returns the largest element value the codec can store.
func (c Codec) MaxElement() uint16 {
	if c.opSize == 1 {
		return 0xFF
	}
	return 0xFFFF
}

// Compress encodes elems as a single terminated stream.
func (c Codec) Compress(elems []uint16) ([]byte, error) {
	maxElem := c.MaxElement()
	for i, e := range elems {
		if e > maxElem {
			return nil, fmt.Errorf("%s: element %d = 0x%X: %w", c.name, i, e, ErrElementRange)
		}
	}
	return c.encode(elems, c.Table(elems)), nil
}

// CompressedLength returns len(Compress(elems)) without emitting any bytes.
func (c Codec) CompressedLength(elems []uint16) int {
	return c.Table(elems).Length()
}

// encode emits the stream described by t. Elements are assumed to be in range.
func (c Codec) encode(elems []uint16, t JumpTable) []byte {
	dst := make([]byte, 0, t.Length())
	t.Walk(func(run bool, at, n int) {
		if run {
			dst = c.put(dst, c.high|uint16(n))
			dst = c.put(dst, elems[at])
			return
		}
		dst = c.put(dst, uint16(n))
		for _, e := range elems[at : at+n] {
			dst = c.put(dst, e)
		}
	})
	return c.put(dst, 0)
}

// Decompress decodes one stream from src into outputSize/OpcodeSize elements.
//
// It returns the elements and the number of bytes of src consumed, including
// the terminator. A stream that terminates early leaves the remaining elements
// zero. A run or span that would write past outputSize fails with ErrOverrun.
func (c Codec) Decompress(src []byte, outputSize int) ([]uint16, int, error) {
	if outputSize < 0 || outputSize%c.opSize != 0 {
		return nil, 0, fmt.Errorf("%s: output size %d: %w", c.name, outputSize, ErrOutputSize)
	}
	out := make([]uint16, outputSize/c.opSize)
	pos, w := 0, 0
	for {
		op, ok := c.get(src, pos)
		if !ok {
			return nil, pos, fmt.Errorf("%s: opcode at 0x%X: %w", c.name, pos, ErrTruncated)
		}
		pos += c.opSize
		if op == 0 {
			return out, pos, nil
		}

		if op&c.high != 0 {
			n := int(op &^ c.high)
			e, ok := c.get(src, pos)
			if !ok {
				return nil, pos, fmt.Errorf("%s: run literal at 0x%X: %w", c.name, pos, ErrTruncated)
			}
			pos += c.opSize
			if w+n > len(out) {
				return nil, pos, fmt.Errorf("%s: run of %d at element %d exceeds %d: %w",
					c.name, n, w, len(out), ErrOverrun)
			}
			for i := range n {
				out[w+i] = e
			}
			w += n
			continue
		}

		n := int(op)
		if w+n > len(out) {
			return nil, pos, fmt.Errorf("%s: span of %d at element %d exceeds %d: %w",
				c.name, n, w, len(out), ErrOverrun)
		}
		if pos+n*c.opSize > len(src) {
			return nil, pos, fmt.Errorf("%s: span of %d at 0x%X: %w", c.name, n, pos, ErrTruncated)
		}
		for i := range n {
			out[w+i], _ = c.get(src, pos)
			pos += c.opSize
		}
		w += n
	}
}

func (c Codec) put(dst []byte, v uint16) []byte {
	if c.opSize == 1 {
		return append(dst, byte(v))
	}
	return append(dst, byte(v>>8), byte(v))
}

func (c Codec) get(src []byte, pos int) (uint16, bool) {
	if pos < 0 || pos+c.opSize > len(src) {
		return 0, false
	}
	if c.opSize == 1 {
		return uint16(src[pos]), true
	}
	return uint16(src[pos])<<8 | uint16(src[pos+1]), true
}
