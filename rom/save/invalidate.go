package save

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

// InvalidationSet is a deduplicated set of chunk header addresses to erase.
type InvalidationSet struct {
	addrs map[rom.Address]struct{}
}

// Add records the chunk header at a.
func (s *InvalidationSet) Add(a rom.Address) {
	if s.addrs == nil {
		s.addrs = make(map[rom.Address]struct{})
	}
	s.addrs[a] = struct{}{}
}

// AddPointer records the chunk whose payload the pointer slot at owner refers to.
func (s *InvalidationSet) AddPointer(img *rom.Image, owner rom.Address) error {
	payload, err := img.ReadPointer(owner)
	if err != nil {
		return fmt.Errorf("save: owner %s: %w", owner, err)
	}
	if payload < format.ChunkHeaderSize {
		return fmt.Errorf("save: owner %s points at %s, before any chunk header: %w",
			owner, payload, rom.ErrBadAddress)
	}
	s.Add(payload - format.ChunkHeaderSize)
	return nil
}

// Len returns the number of recorded addresses.
func (s *InvalidationSet) Len() int { return len(s.addrs) }

// Sorted returns the recorded addresses in ascending order.
func (s *InvalidationSet) Sorted() []rom.Address {
	out := make([]rom.Address, 0, len(s.addrs))
	for a := range s.addrs {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy of s.
func (s *InvalidationSet) Clone() *InvalidationSet {
	c := &InvalidationSet{}
	for a := range s.addrs {
		c.Add(a)
	}
	return c
}

// Reset forgets every address.
func (s *InvalidationSet) Reset() { clear(s.addrs) }

// Invalidate erases the chunk whose header starts at a and returns the number
// of bytes filled. A header that is already all filler is an invalidated chunk
// and yields 0. Anything else is a *rom.CorruptionError.
func Invalidate(data []byte, a rom.Address) (int, error) {
	hdr, ok := format.Slice(data, a.Offset(), format.ChunkHeaderSize)
	if !ok {
		return 0, fmt.Errorf("save: invalidate %s: %w", a, rom.ErrBadAddress)
	}
	if format.IsFiller(hdr) {
		return 0, nil
	}

	c, err := rom.ChunkAt(data, a)
	if errors.Is(err, rom.ErrNoChunk) {
		return 0, &rom.CorruptionError{Addr: a, Reason: "no chunk header to invalidate", Err: err}
	}
	if err != nil {
		return 0, err
	}
	format.Fill(data[c.Addr.Offset():c.End().Offset()])
	return c.Size(), nil
}

// PatchPointer stores payload into the pointer slot at owner, keeping the bits
// of the old value above the 28-bit bus address.
func PatchPointer(data []byte, owner, payload rom.Address) error {
	if !format.Has(data, owner.Offset(), format.PointerSize) {
		return fmt.Errorf("save: pointer slot %s: %w", owner, rom.ErrBadAddress)
	}
	old := format.ReadU32(data, owner.Offset())
	v := old&^format.PointerLowMask | format.PointerTag | uint32(payload)&format.PointerOffsetMask
	format.PutU32(data, owner.Offset(), v)
	return nil
}
