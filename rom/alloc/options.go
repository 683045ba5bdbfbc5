package alloc

import (
	"log/slog"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

// DefaultGrowStep is the number of filler bytes appended when the image runs
// out of free space.
const DefaultGrowStep = 0x20000

// Options configures a Driver.
type Options struct {
	// Floor is the lowest address chunks may be placed at.
	// Default: the end of the cartridge header.
	Floor rom.Address

	// Ceiling is the exclusive upper bound for placement and growth.
	// Zero means the cartridge window (0x8000000).
	Ceiling int

	// GrowStep is the number of bytes appended per grow.
	// Default: DefaultGrowStep. Negative disables growth.
	GrowStep int

	// Logger receives debug records for placements, grows and restarts.
	// Default: logger.L.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by romctl.
func DefaultOptions() Options {
	return Options{
		Floor:    rom.Address(format.GBAHeaderSize),
		GrowStep: DefaultGrowStep,
	}
}

func (o Options) ceiling() int {
	if o.Ceiling <= 0 || o.Ceiling > format.AddressCeiling {
		return format.AddressCeiling
	}
	return o.Ceiling
}

func (o Options) growStep() int {
	if o.GrowStep == 0 {
		return DefaultGrowStep
	}
	return o.GrowStep
}
