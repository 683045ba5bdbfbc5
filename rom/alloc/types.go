package alloc

import (
	"fmt"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/space"
)

// Result is an allocator's answer to an offered region.
type Result int

const (
	Accept Result = iota
	InsufficientSpace
	NoMoreChunks
)

func (r Result) String() string {
	switch r {
	case Accept:
		return "accept"
	case InsufficientSpace:
		return "insufficient-space"
	case NoMoreChunks:
		return "no-more-chunks"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// ManifestVersion is the version byte at the head of manifest payloads.
const ManifestVersion = 1

// Kind describes a family of chunks.
type Kind struct {
	Name   string
	Prefix []byte // written before the payload, counted in the RATS length
}

var (
	// KindData is a plain chunk with no prefix.
	KindData = Kind{Name: "data"}

	// KindManifest is a chunk listing sibling addresses, led by a version byte.
	KindManifest = Kind{Name: "manifest", Prefix: []byte{ManifestVersion}}
)

// Chunk is a pending chunk waiting for placement.
type Chunk struct {
	Kind    Kind
	Payload []byte
	Align   bool         // start on a 4-byte boundary
	Index   uint32       // creation order within a save
	Old     *rom.Address // header of the chunk this one replaces, erased before allocation
	Owner   *rom.Address // pointer slot patched with the new payload address
}

// Length returns the RATS length of the chunk: prefix plus payload.
func (c *Chunk) Length() int { return len(c.Kind.Prefix) + len(c.Payload) }

// Size returns the bytes the chunk occupies including its header.
func (c *Chunk) Size() int { return format.ChunkHeaderSize + c.Length() }

// Validate rejects chunks that cannot be represented by a RATS header.
func (c *Chunk) Validate() error {
	if n := c.Length(); n > format.MaxChunkPayload {
		return fmt.Errorf("%s chunk #%d: %d bytes (max %d): %w",
			c.Kind.Name, c.Index, n, format.MaxChunkPayload, rom.ErrOversized)
	}
	return nil
}

// SaveData is filled by an allocator that accepts a region.
type SaveData struct {
	Chunk *Chunk
	Addr  rom.Address // header address
}

// Placement records where a chunk was written.
type Placement struct {
	Chunk *Chunk
	Addr  rom.Address // header address
}

// PayloadAddr returns the address of the first byte after the header.
func (p Placement) PayloadAddr() rom.Address { return p.Addr + format.ChunkHeaderSize }

// End returns the first address past the chunk.
func (p Placement) End() rom.Address { return p.Addr + rom.Address(p.Chunk.Size()) }

// Func is the callback form of an allocator. target is the working buffer.
// When reset is true the allocator must rewind to its first chunk before
// answering.
type Func func(target []byte, region space.Region, out *SaveData, reset bool) Result

// Source is the iterator form of an allocator.
type Source interface {
	// Current returns the chunk at the cursor without advancing, or nil once
	// every chunk has been placed.
	Current() (*Chunk, error)

	// Placed records the header address of the chunk returned by Current and
	// advances the cursor.
	Placed(c *Chunk, at rom.Address)

	// Reset rewinds the cursor and forgets every recorded address.
	Reset()
}

// Fit returns the header address c would occupy inside r, or false if it does
// not fit.
func Fit(r space.Region, c *Chunk) (rom.Address, bool) {
	addr := r.Addr
	if c.Align {
		addr = addr.Align4()
	}
	pad := int(addr - r.Addr)
	usable := r.Size - pad - format.ChunkHeaderSize - len(c.Kind.Prefix)
	if usable < len(c.Payload) {
		return 0, false
	}
	return addr, true
}
