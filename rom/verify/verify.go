package verify

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/alloc"
)

// ValidationError describes one failed invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants runs Size, Chunks and NoOverlap.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte, floor rom.Address, placed []alloc.Placement) error {
	if err := Size(data); err != nil {
		return err
	}
	if err := Chunks(data, floor); err != nil {
		return err
	}
	return NoOverlap(placed)
}

// Size checks that the image fits the cartridge window.
func Size(data []byte) error {
	if len(data) > format.AddressCeiling {
		return &ValidationError{
			Type:    "Size",
			Message: fmt.Sprintf("image is 0x%X bytes (max 0x%X)", len(data), format.AddressCeiling),
			Offset:  -1,
		}
	}
	return nil
}

// Chunks walks every chunk at or after floor.
func Chunks(data []byte, floor rom.Address) error {
	it := rom.Chunks(data, floor)
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		if int(c.Header.Length) > format.MaxChunkPayload {
			return &ValidationError{
				Type:    "Chunks",
				Message: fmt.Sprintf("length 0x%X exceeds chunk limit 0x%X", c.Header.Length, format.MaxChunkPayload),
				Offset:  c.Addr.Offset(),
				Details: map[string]any{"length": c.Header.Length},
			}
		}
	}

	if err := it.Err(); err != nil {
		verr := &ValidationError{Type: "Chunks", Message: err.Error(), Offset: -1}
		var ce *rom.CorruptionError
		if errors.As(err, &ce) {
			verr.Message = ce.Reason
			verr.Offset = ce.Addr.Offset()
			verr.Details = map[string]any{"cause": ce.Err}
		}
		return verr
	}
	return nil
}

// NoOverlap checks that no two placements share a byte.
func NoOverlap(placed []alloc.Placement) error {
	sorted := slices.Clone(placed)
	slices.SortFunc(sorted, func(a, b alloc.Placement) int {
		return int(a.Addr) - int(b.Addr)
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Addr < prev.End() {
			return &ValidationError{
				Type:    "NoOverlap",
				Message: fmt.Sprintf("chunk at %s overlaps chunk at %s (ends %s)", cur.Addr, prev.Addr, prev.End()),
				Offset:  cur.Addr.Offset(),
				Details: map[string]any{"previous": prev.Addr, "previous_end": prev.End()},
			}
		}
	}
	return nil
}

// Placements checks what one save wrote: the image size, a valid header and
// payload for every placement, and no overlap between them. Unlike Chunks it
// does not look at the rest of the image, which may hold arbitrary data.
func Placements(data []byte, placed []alloc.Placement) error {
	if err := Size(data); err != nil {
		return err
	}
	for _, p := range placed {
		c, err := rom.ChunkAt(data, p.Addr)
		if err != nil {
			return &ValidationError{
				Type:    "Placements",
				Message: err.Error(),
				Offset:  p.Addr.Offset(),
			}
		}
		if int(c.Header.Length) != p.Chunk.Length() {
			return &ValidationError{
				Type:    "Placements",
				Message: fmt.Sprintf("length 0x%X (placed 0x%X)", c.Header.Length, p.Chunk.Length()),
				Offset:  p.Addr.Offset(),
				Details: map[string]any{"index": p.Chunk.Index, "kind": p.Chunk.Kind.Name},
			}
		}
	}
	return NoOverlap(placed)
}

// CartridgeHeader checks for the GBA header fixed value. It is not part of
// AllInvariants because synthetic images carry no header.
func CartridgeHeader(data []byte) error {
	if len(data) < format.GBAHeaderSize {
		return &ValidationError{
			Type:    "CartridgeHeader",
			Message: fmt.Sprintf("image too small: %d bytes (need %d)", len(data), format.GBAHeaderSize),
			Offset:  -1,
		}
	}
	if got := data[format.GBAFixedValueOffset]; got != format.GBAFixedValue {
		return &ValidationError{
			Type:    "CartridgeHeader",
			Message: fmt.Sprintf("fixed value 0x%02X (expected 0x%02X)", got, format.GBAFixedValue),
			Offset:  format.GBAFixedValueOffset,
		}
	}
	return nil
}
