// Package space finds free regions in a ROM image: maximal runs of the filler
// byte that are not covered by a valid RATS chunk.
//
// A valid chunk inside what looks like free space is never free; the scanner
// jumps over its header and payload. A "STAR" magic whose header is invalid
// cannot be told apart from damage and is reported as corruption instead of
// being skipped.
package space

import (
	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

// Region is a maximal run of filler bytes.
type Region struct {
	Addr rom.Address
	Size int
}

// End returns the first address past the region.
func (r Region) End() rom.Address { return r.Addr + rom.Address(r.Size) }

// Scanner walks an image buffer between Floor and Ceiling.
type Scanner struct {
	Data    []byte
	Floor   rom.Address // scans never start below Floor
	Ceiling int         // exclusive upper bound; 0 means the cartridge window
}

// New returns a scanner over data with the default ceiling.
func New(data []byte, floor rom.Address) *Scanner {
	return &Scanner{Data: data, Floor: floor}
}

func (s *Scanner) limit() int {
	ceiling := s.Ceiling
	if ceiling <= 0 || ceiling > format.AddressCeiling {
		ceiling = format.AddressCeiling
	}
	return min(len(s.Data), ceiling)
}

// Next returns the first region of at least minSize bytes that starts at or
// after from. It returns false when the end of the image or the ceiling is
// reached first, and a *rom.CorruptionError when an invalid chunk header is met.
func (s *Scanner) Next(from rom.Address, minSize int) (Region, bool, error) {
	minSize = max(minSize, 1)
	end := s.limit()
	start := -1

	off := max(from.Offset(), s.Floor.Offset())
	for off < end {
		b := s.Data[off]
		if b == format.Filler {
			if start < 0 {
				start = off
			}
			off++
			continue
		}

		if start >= 0 && off-start >= minSize {
			return Region{Addr: rom.Address(start), Size: off - start}, true, nil
		}
		start = -1

		if !format.HasMagic(s.Data, off) {
			off++
			continue
		}
		c, err := rom.ChunkAt(s.Data, rom.Address(off))
		if err != nil {
			return Region{}, false, err
		}
		off = c.End().Offset()
	}

	if start >= 0 && end-start >= minSize {
		return Region{Addr: rom.Address(start), Size: end - start}, true, nil
	}
	return Region{}, false, nil
}

// Regions returns every region of at least minSize bytes from Floor.
func (s *Scanner) Regions(minSize int) ([]Region, error) {
	var out []Region
	from := s.Floor
	for {
		r, ok, err := s.Next(from, minSize)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, r)
		from = r.End()
	}
}

// Stats summarizes the free space above Floor.
type Stats struct {
	Regions int
	Free    int    // total filler bytes in regions
	Largest Region // largest single region
}

// Summary walks every region and totals them.
func (s *Scanner) Summary() (Stats, error) {
	regions, err := s.Regions(1)
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, r := range regions {
		st.Regions++
		st.Free += r.Size
		if r.Size > st.Largest.Size {
			st.Largest = r
		}
	}
	return st, nil
}
