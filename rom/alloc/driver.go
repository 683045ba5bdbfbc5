package alloc

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/internal/logger"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/dirty"
	"github.com/joshuapare/romkit/rom/space"
)

// maxChunkSpan is the largest region any chunk can need: the largest chunk
// plus worst-case alignment padding.
const maxChunkSpan = format.ChunkHeaderSize + format.MaxChunkPayload + format.ChunkAlignment - 1

// Stats counts driver activity across runs.
type Stats struct {
	Offers    int
	Accepted  int
	Rejected  int
	Grows     int
	GrowBytes int
	Restarts  int
}

// Driver runs allocators against a working image.
type Driver struct {
	opts  Options
	log   *slog.Logger
	stats Stats
}

// NewDriver returns a driver configured by opts.
func NewDriver(opts Options) *Driver {
	return &Driver{opts: opts, log: logger.Or(opts.Logger)}
}

// Stats returns the counters accumulated so far.
func (d *Driver) Stats() Stats { return d.stats }

// RunSource places every chunk produced by src into work.
func (d *Driver) RunSource(work *rom.Image, src Source) ([]Placement, error) {
	var srcErr error
	fn := func(_ []byte, r space.Region, out *SaveData, reset bool) Result {
		if reset {
			src.Reset()
		}
		c, err := src.Current()
		if err != nil {
			srcErr = err
			return NoMoreChunks
		}
		if c == nil {
			return NoMoreChunks
		}
		addr, ok := Fit(r, c)
		if !ok {
			return InsufficientSpace
		}
		out.Chunk = c
		out.Addr = addr
		src.Placed(c, addr)
		return Accept
	}

	placed, err := d.Run(work, fn)
	if srcErr != nil {
		return nil, srcErr
	}
	return placed, err
}

// Run offers free regions of work to fn until it reports NoMoreChunks.
//
// The image is modified in place; callers that need atomicity run the driver on
// a clone and publish it afterwards. On error the contents of work are
// unspecified.
func (d *Driver) Run(work *rom.Image, fn Func) ([]Placement, error) {
	floor := d.opts.Floor
	ceiling := d.opts.ceiling()

	var placed []Placement
	from := floor
	reset := false

	for {
		sc := space.Scanner{Data: work.Bytes(), Floor: floor, Ceiling: ceiling}
		region, ok, err := sc.Next(from, format.ChunkHeaderSize)
		if err != nil {
			return nil, fmt.Errorf("alloc: scan: %w", err)
		}

		if !ok {
			// Out of regions. The allocator may already be done: ask it with an
			// empty region at the end before growing.
			end := space.Region{Addr: rom.Address(min(work.Size(), ceiling))}
			var out SaveData
			switch fn(work.Bytes(), end, &out, reset) {
			case NoMoreChunks:
				return placed, nil
			case Accept:
				return nil, fmt.Errorf("accept of empty region at %s: %w", end.Addr, ErrBadPlacement)
			}

			if err := d.grow(work, ceiling); err != nil {
				return nil, err
			}
			d.erase(work, placed)
			placed = placed[:0]
			from = floor
			reset = true
			d.stats.Restarts++
			d.log.Debug("alloc: restart", "size", work.Size())
			continue
		}

		d.stats.Offers++
		var out SaveData
		res := fn(work.Bytes(), region, &out, reset)
		reset = false

		switch res {
		case Accept:
			p, err := d.place(work, region, out)
			if err != nil {
				return nil, err
			}
			d.stats.Accepted++
			placed = append(placed, p)
			from = p.End()
			d.log.Debug("alloc: placed",
				"kind", p.Chunk.Kind.Name,
				"index", p.Chunk.Index,
				"addr", p.Addr.String(),
				"size", p.Chunk.Size())

		case InsufficientSpace:
			d.stats.Rejected++
			if region.Size >= maxChunkSpan {
				return nil, fmt.Errorf("region %s+0x%X: %w", region.Addr, region.Size, ErrRejectedFit)
			}
			from = region.End()

		case NoMoreChunks:
			return placed, nil

		default:
			return nil, fmt.Errorf("alloc: unknown result %v", res)
		}
	}
}

// grow appends filler to work, bounded by ceiling.
func (d *Driver) grow(work *rom.Image, ceiling int) error {
	step := d.opts.growStep()
	room := ceiling - work.Size()
	if step < 0 || room <= 0 {
		return fmt.Errorf("alloc: image at 0x%X: %w", work.Size(), rom.ErrInsufficientSpace)
	}
	n, err := work.Grow(min(step, room))
	if err != nil {
		return fmt.Errorf("alloc: %w", err)
	}
	d.stats.Grows++
	d.stats.GrowBytes += n
	d.log.Debug("alloc: grow", "bytes", n, "size", work.Size())
	return nil
}

// place checks the allocator's answer and writes the chunk.
func (d *Driver) place(work *rom.Image, region space.Region, out SaveData) (Placement, error) {
	c := out.Chunk
	if c == nil {
		return Placement{}, fmt.Errorf("accept without chunk: %w", ErrBadPlacement)
	}
	if err := c.Validate(); err != nil {
		return Placement{}, err
	}
	p := Placement{Chunk: c, Addr: out.Addr}
	if p.Addr < region.Addr || p.End() > region.End() {
		return Placement{}, fmt.Errorf("%s chunk #%d at %s (size 0x%X) in region %s+0x%X: %w",
			c.Kind.Name, c.Index, p.Addr, c.Size(), region.Addr, region.Size, ErrBadPlacement)
	}
	if c.Align && !p.Addr.Aligned4() {
		return Placement{}, fmt.Errorf("%s chunk #%d at %s is not 4-aligned: %w",
			c.Kind.Name, c.Index, p.Addr, ErrBadPlacement)
	}

	if err := writeChunk(work.Bytes(), work.Dirty(), p); err != nil {
		return Placement{}, err
	}
	return p, nil
}

// writeChunk stores the header, prefix and payload of p.
func writeChunk(data []byte, dt dirty.DirtyTracker, p Placement) error {
	c := p.Chunk
	off := p.Addr.Offset()
	if err := format.PutChunkHeader(data, off, c.Length()); err != nil {
		return err
	}
	n := off + format.ChunkHeaderSize
	n += copy(data[n:], c.Kind.Prefix)
	copy(data[n:], c.Payload)
	dt.Add(off, c.Size())
	return nil
}

// erase fills the chunks of an abandoned pass with filler.
func (d *Driver) erase(work *rom.Image, placed []Placement) {
	eraseChunks(work.Bytes(), work.Dirty(), placed)
}

func eraseChunks(data []byte, dt dirty.DirtyTracker, placed []Placement) {
	for _, p := range placed {
		format.Fill(data[p.Addr.Offset():p.End().Offset()])
		dt.Add(p.Addr.Offset(), p.Chunk.Size())
	}
}
