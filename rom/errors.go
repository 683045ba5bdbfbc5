package rom

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt indicates a chunk header whose fields are inconsistent.
	ErrCorrupt = errors.New("rom: corrupt chunk")

	// ErrInsufficientSpace indicates no free region fits even after growing to the ceiling.
	ErrInsufficientSpace = errors.New("rom: insufficient free space")

	// ErrOversized indicates a payload above the 16-bit chunk length limit.
	ErrOversized = errors.New("rom: payload exceeds chunk limit")

	// ErrBadAddress indicates an address outside the image or the cartridge window,
	// or a pointer without the bus tag.
	ErrBadAddress = errors.New("rom: bad address")

	// ErrNoChunk indicates that no chunk was found where one was expected.
	ErrNoChunk = errors.New("rom: no chunk")
)

// CorruptionError reports a damaged chunk at a specific address.
// It matches ErrCorrupt with errors.Is, as well as the underlying cause.
type CorruptionError struct {
	Addr   Address
	Reason string
	Err    error
}

func (e *CorruptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rom: corrupt chunk at %s: %s: %v", e.Addr, e.Reason, e.Err)
	}
	return fmt.Sprintf("rom: corrupt chunk at %s: %s", e.Addr, e.Reason)
}

func (e *CorruptionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCorrupt}
	}
	return []error{ErrCorrupt, e.Err}
}
