package save

import (
	"log/slog"

	"github.com/joshuapare/romkit/rom/alloc"
	"github.com/joshuapare/romkit/rom/dirty"
)

// Options configures a save.
type Options struct {
	// Alloc configures the allocation driver.
	Alloc alloc.Options

	// Verify runs verify.Placements on the work image before publishing.
	Verify bool

	// FlushMode selects the sync behavior of Session.Commit.
	// Default: dirty.FlushAuto.
	FlushMode dirty.FlushMode

	// Logger receives save records. Default: logger.L.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by romctl: default allocation
// settings with verification on.
func DefaultOptions() Options {
	return Options{
		Alloc:  alloc.DefaultOptions(),
		Verify: true,
	}
}
