package rom

import (
	"errors"
	"fmt"

	"github.com/joshuapare/romkit/internal/format"
)

// Chunk is a valid RATS chunk found in an image.
type Chunk struct {
	Addr    Address            // Header address
	Header  format.ChunkHeader // Decoded header
	Payload []byte             // Aliases the image buffer
}

// PayloadAddr returns the address of the first payload byte.
func (c Chunk) PayloadAddr() Address { return c.Addr + format.ChunkHeaderSize }

// Size returns the chunk size including its header.
func (c Chunk) Size() int { return c.Header.Size() }

// End returns the first address past the chunk.
func (c Chunk) End() Address { return c.Addr + Address(c.Size()) }

// ChunkAt decodes the chunk whose header starts at a.
//
// It returns ErrNoChunk when the magic is absent and a *CorruptionError when
// the magic is present but the header is inconsistent or truncated.
func ChunkAt(data []byte, a Address) (Chunk, error) {
	h, err := format.ParseChunkHeader(data, a.Offset())
	switch {
	case errors.Is(err, format.ErrSignatureMismatch):
		return Chunk{}, fmt.Errorf("at %s: %w", a, ErrNoChunk)
	case errors.Is(err, format.ErrComplement):
		return Chunk{}, &CorruptionError{Addr: a, Reason: "length/complement mismatch", Err: err}
	case err != nil:
		return Chunk{}, &CorruptionError{Addr: a, Reason: "truncated", Err: err}
	}
	off := a.Offset() + format.ChunkHeaderSize
	return Chunk{
		Addr:    a,
		Header:  h,
		Payload: data[off : off+int(h.Length)],
	}, nil
}

// FindChunk returns the first valid chunk at or after from that match accepts.
// A nil match accepts every chunk. Magic bytes followed by an invalid header are
// treated as ordinary data and skipped.
func FindChunk(data []byte, from Address, match func(Chunk) bool) (Chunk, error) {
	end := min(len(data), format.AddressCeiling)
	for off := from.Offset(); off+format.ChunkHeaderSize <= end; {
		if !format.HasMagic(data, off) {
			off++
			continue
		}
		c, err := ChunkAt(data, Address(off))
		if err != nil {
			off++
			continue
		}
		if match == nil || match(c) {
			return c, nil
		}
		off = c.End().Offset()
	}
	return Chunk{}, fmt.Errorf("at or after %s: %w", from, ErrNoChunk)
}

// ChunkIterator walks every chunk from a floor address.
//
// Unlike FindChunk, it stops at the first invalid header and reports it through
// Err, which makes it suitable for validation of the region the editor owns.
type ChunkIterator struct {
	data []byte
	next int
	end  int
	err  error
}

// Chunks returns an iterator over the chunks at or after from.
func Chunks(data []byte, from Address) *ChunkIterator {
	return &ChunkIterator{
		data: data,
		next: from.Offset(),
		end:  min(len(data), format.AddressCeiling),
	}
}

// Next returns the next chunk, or false at the end or on error.
func (it *ChunkIterator) Next() (Chunk, bool) {
	for it.err == nil && it.next+format.ChunkMagicSize <= it.end {
		if !format.HasMagic(it.data, it.next) {
			it.next++
			continue
		}
		c, err := ChunkAt(it.data, Address(it.next))
		if err != nil {
			it.err = err
			return Chunk{}, false
		}
		it.next = c.End().Offset()
		return c, true
	}
	return Chunk{}, false
}

// Err returns the error that stopped iteration, if any.
func (it *ChunkIterator) Err() error { return it.err }
