package rom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/romkit/internal/format"
)

// Address is an offset into the ROM image, always below the cartridge window.
type Address uint32

// NewAddress validates off against the addressable ceiling.
func NewAddress(off int) (Address, error) {
	if off < 0 || off >= format.AddressCeiling {
		return 0, fmt.Errorf("offset 0x%X: %w", off, ErrBadAddress)
	}
	return Address(off), nil
}

// MustAddress is NewAddress for constants known to be valid. It panics otherwise.
func MustAddress(off int) Address {
	a, err := NewAddress(off)
	if err != nil {
		panic(err)
	}
	return a
}

// FromPointer untags a cartridge bus pointer.
func FromPointer(p uint32) (Address, error) {
	if p&format.PointerTag == 0 {
		return 0, fmt.Errorf("pointer 0x%08X is not tagged: %w", p, ErrBadAddress)
	}
	return Address(p & format.PointerOffsetMask), nil
}

// ParseAddress accepts a hex offset ("7F0000", "0x7F0000") or a tagged pointer
// ("0x087F0000").
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, ErrBadAddress)
	}
	if v >= format.AddressCeiling {
		return FromPointer(uint32(v))
	}
	return Address(v), nil
}

// Offset returns the address as a slice index.
func (a Address) Offset() int { return int(a) }

// Pointer returns the tagged bus pointer for a.
func (a Address) Pointer() uint32 { return uint32(a) | format.PointerTag }

// Add returns a+n, failing if the result leaves the cartridge window.
func (a Address) Add(n int) (Address, error) {
	return NewAddress(int(a) + n)
}

// Align4 returns the smallest 4-aligned address >= a.
func (a Address) Align4() Address { return Address(format.Align4(int(a))) }

// Aligned4 reports whether a is a multiple of 4.
func (a Address) Aligned4() bool { return a%format.ChunkAlignment == 0 }

func (a Address) String() string { return fmt.Sprintf("0x%06X", uint32(a)) }
