package dirty

import (
	"context"
	"fmt"
	"os"
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// standardPageSize is the typical OS page size (4KB).
	standardPageSize = 4096
)

// FlushMode controls durability guarantees when writing ranges back.
type FlushMode int

const (
	// FlushAuto writes the ranges and calls fdatasync() once.
	// On macOS, fsync() is used instead.
	FlushAuto FlushMode = iota

	// FlushDataOnly writes the ranges without syncing.
	// The caller is responsible for syncing later.
	FlushDataOnly

	// FlushFull writes the ranges and asks for full durability
	// (F_FULLFSYNC on macOS, fdatasync elsewhere).
	FlushFull
)

// Range represents a dirty byte range (absolute image offsets).
type Range struct {
	Off int64 // Absolute offset in the image
	Len int64 // Length in bytes
}

// End returns the first offset past the range.
func (r Range) End() int64 { return r.Off + r.Len }

// Tracker accumulates dirty ranges and writes them back to a file.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	ranges   []Range
	pageSize int64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: standardPageSize,
	}
}

// Add records a dirty range. Empty ranges are ignored.
func (t *Tracker) Add(off, length int) {
	if length <= 0 || off < 0 {
		return
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Merge appends every range recorded by o.
func (t *Tracker) Merge(o *Tracker) {
	if o == nil {
		return
	}
	t.ranges = append(t.ranges, o.ranges...)
}

// Empty reports whether nothing has been recorded.
func (t *Tracker) Empty() bool { return len(t.ranges) == 0 }

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns the coalesced, page-aligned ranges that Flush would write.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// Flush writes every dirty range of data to f and syncs according to mode.
//
// f is resized to len(data) first, so an image that grew during a save is
// extended before its new tail is written. Ranges are clipped to len(data).
// On success the tracker is reset.
//
// The context can be used to cancel between ranges. If cancelled mid-way, some
// ranges may have been written while others have not.
func (t *Tracker) Flush(ctx context.Context, f *os.File, data []byte, mode FlushMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.Size() != int64(len(data)) {
		if err := f.Truncate(int64(len(data))); err != nil {
			return fmt.Errorf("dirty: resize to %d: %w", len(data), err)
		}
	}

	size := int64(len(data))
	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.Off >= size {
			continue
		}
		end := min(r.End(), size)
		if _, err := f.WriteAt(data[r.Off:end], r.Off); err != nil {
			return fmt.Errorf("dirty: write 0x%X-0x%X: %w", r.Off, end, err)
		}
	}

	if mode != FlushDataOnly {
		if err := fdatasync(f, mode == FlushFull); err != nil {
			return fmt.Errorf("dirty: sync: %w", err)
		}
	}

	t.Reset()
	return nil
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping/adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize

		end := r.End()
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}

		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.End() {
			current.Len = max(current.End(), next.End()) - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
