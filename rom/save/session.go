package save

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/internal/logger"
	"github.com/joshuapare/romkit/rom"
	"github.com/joshuapare/romkit/rom/alloc"
	"github.com/joshuapare/romkit/rom/verify"
)

// PostProcessFunc runs after placement and pointer patching, before
// publishing. It may modify work, typically to write tables that refer to the
// placed chunks.
type PostProcessFunc func(work *rom.Image, placed []alloc.Placement) error

// Report describes a published save.
type Report struct {
	Placements  []alloc.Placement
	Invalidated []rom.Address // header addresses erased, ascending
	Erased      int           // bytes filled by invalidation
	Grown       int           // bytes appended to the image
	Fingerprint uint64        // xxhash of the published image
	Alloc       alloc.Stats
}

// Session owns the state of consecutive saves into one image.
type Session struct {
	img     *rom.Image
	opts    Options
	log     *slog.Logger
	inv     InvalidationSet
	pending []*alloc.Chunk
	index   uint32
}

// NewSession returns a session saving into img.
func NewSession(img *rom.Image, opts Options) *Session {
	log := logger.Or(opts.Logger)
	if opts.Alloc.Logger == nil {
		opts.Alloc.Logger = log
	}
	return &Session{img: img, opts: opts, log: log}
}

// Image returns the committed image.
func (s *Session) Image() *rom.Image { return s.img }

// Invalidate schedules the chunk whose header starts at a for erasure.
func (s *Session) Invalidate(a rom.Address) { s.inv.Add(a) }

// InvalidatePointer schedules the chunk referenced by the pointer slot at owner.
func (s *Session) InvalidatePointer(owner rom.Address) error {
	return s.inv.AddPointer(s.img, owner)
}

// NewChunk returns a pending chunk carrying the next index. Set Old and Owner
// on the result before saving to replace a chunk and patch its pointer.
func (s *Session) NewChunk(kind alloc.Kind, payload []byte, align bool) *alloc.Chunk {
	c := &alloc.Chunk{Kind: kind, Payload: payload, Align: align, Index: s.index}
	s.index++
	s.pending = append(s.pending, c)
	return c
}

// Save places chunks produced by fn. The committed image changes only if
// every step succeeds.
func (s *Session) Save(fn alloc.Func, post PostProcessFunc) (*Report, error) {
	return s.run(post, func(d *alloc.Driver, work *rom.Image) ([]alloc.Placement, error) {
		return d.Run(work, fn)
	})
}

// SaveSource places every chunk src produces.
func (s *Session) SaveSource(src alloc.Source, post PostProcessFunc) (*Report, error) {
	return s.run(post, func(d *alloc.Driver, work *rom.Image) ([]alloc.Placement, error) {
		return d.RunSource(work, src)
	})
}

// Commit writes the dirty ranges of the committed image back to its file.
func (s *Session) Commit(ctx context.Context) error {
	return s.img.Flush(ctx, s.opts.FlushMode)
}

type runFunc func(d *alloc.Driver, work *rom.Image) ([]alloc.Placement, error)

func (s *Session) run(post PostProcessFunc, place runFunc) (*Report, error) {
	inv := s.inv.Clone()
	for _, c := range s.pending {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("save: %w", err)
		}
		if c.Old != nil {
			inv.Add(*c.Old)
		}
	}

	work := s.img.Clone()
	rep := &Report{Invalidated: inv.Sorted()}

	for _, a := range rep.Invalidated {
		n, err := Invalidate(work.Bytes(), a)
		if err != nil {
			return nil, fmt.Errorf("save: invalidate: %w", err)
		}
		work.Dirty().Add(a.Offset(), n)
		rep.Erased += n
	}

	d := alloc.NewDriver(s.opts.Alloc)
	placed, err := place(d, work)
	rep.Alloc = d.Stats()
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	rep.Placements = placed

	data := work.Bytes()
	for _, p := range placed {
		if p.Chunk.Owner == nil {
			continue
		}
		owner := *p.Chunk.Owner
		if err := PatchPointer(data, owner, p.PayloadAddr()); err != nil {
			return nil, err
		}
		work.Dirty().Add(owner.Offset(), format.PointerSize)
	}

	if post != nil {
		if err := post(work, placed); err != nil {
			return nil, fmt.Errorf("save: post-process: %w", err)
		}
	}

	if s.opts.Verify {
		if err := verify.Placements(work.Bytes(), placed); err != nil {
			return nil, fmt.Errorf("save: verify: %w", err)
		}
	}

	rep.Grown = work.Size() - s.img.Size()
	s.img.Publish(work)
	rep.Fingerprint = s.img.Fingerprint()

	s.inv.Reset()
	s.pending = s.pending[:0]

	s.log.Info("save: published",
		"chunks", len(placed),
		"invalidated", len(rep.Invalidated),
		"grown", rep.Grown,
		"size", s.img.Size(),
		"restarts", rep.Alloc.Restarts)
	return rep, nil
}

// Save is the one-shot form: it erases the chunks at invalidate, places the
// chunks fn produces, patches owners, runs post and publishes into img.
func Save(img *rom.Image, invalidate []rom.Address, fn alloc.Func, post PostProcessFunc, opts Options) (*Report, error) {
	s := NewSession(img, opts)
	for _, a := range invalidate {
		s.Invalidate(a)
	}
	return s.Save(fn, post)
}
