package rom

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/internal/mmfile"
	"github.com/joshuapare/romkit/internal/writer"
	"github.com/joshuapare/romkit/rom/dirty"
)

// Image is a ROM loaded into an owned, growable buffer.
type Image struct {
	path string
	data []byte
	dt   *dirty.Tracker
}

// New wraps data as an image. The image takes ownership of data.
func New(data []byte) *Image {
	return &Image{data: data, dt: dirty.NewTracker()}
}

// Load reads the ROM at path into a private buffer.
func Load(path string) (*Image, error) {
	mapped, cleanup, err := mmfile.Map(path, format.AddressCeiling)
	if err != nil {
		return nil, fmt.Errorf("rom: load: %w", err)
	}
	data := make([]byte, len(mapped))
	copy(data, mapped)
	if err := cleanup(); err != nil {
		return nil, fmt.Errorf("rom: unmap %s: %w", path, err)
	}
	img := New(data)
	img.path = path
	return img, nil
}

// Path returns the file the image was loaded from or last written to.
func (img *Image) Path() string { return img.path }

// Bytes returns the image buffer. Callers must not retain it across a Publish.
func (img *Image) Bytes() []byte { return img.data }

// Size returns the image size in bytes.
func (img *Image) Size() int { return len(img.data) }

// Dirty returns the tracker holding ranges changed since the last flush.
func (img *Image) Dirty() *dirty.Tracker { return img.dt }

// Contains reports whether [a, a+n) lies within the image.
func (img *Image) Contains(a Address, n int) bool {
	return format.Has(img.data, a.Offset(), n)
}

// Slice returns the n bytes at a.
func (img *Image) Slice(a Address, n int) ([]byte, error) {
	b, ok := format.Slice(img.data, a.Offset(), n)
	if !ok {
		return nil, fmt.Errorf("%s+%d beyond image size 0x%X: %w", a, n, len(img.data), ErrBadAddress)
	}
	return b, nil
}

// Clone returns a private copy of the image with an empty dirty tracker.
func (img *Image) Clone() *Image {
	data := make([]byte, len(img.data))
	copy(data, img.data)
	return &Image{path: img.path, data: data, dt: dirty.NewTracker()}
}

// Grow appends up to n filler bytes without crossing the cartridge window and
// returns how many were added.
func (img *Image) Grow(n int) (int, error) {
	room := format.AddressCeiling - len(img.data)
	if n <= 0 || room <= 0 {
		return 0, fmt.Errorf("grow by %d at size 0x%X: %w", n, len(img.data), ErrInsufficientSpace)
	}
	n = min(n, room)
	start := len(img.data)
	img.data = append(img.data, make([]byte, n)...)
	format.Fill(img.data[start:])
	img.dt.Add(start, n)
	return n, nil
}

// Publish replaces the image contents with work and takes over its dirty
// ranges. work must not be used afterwards.
func (img *Image) Publish(work *Image) {
	img.data = work.data
	img.dt.Merge(work.dt)
	work.data = nil
	work.dt = dirty.NewTracker()
}

// ReadPointer reads the tagged pointer stored in the 4-byte slot at owner.
func (img *Image) ReadPointer(owner Address) (Address, error) {
	if !img.Contains(owner, format.PointerSize) {
		return 0, fmt.Errorf("pointer slot %s: %w", owner, ErrBadAddress)
	}
	return FromPointer(format.ReadU32(img.data, owner.Offset()))
}

// Fingerprint returns the xxhash of the whole image.
func (img *Image) Fingerprint() uint64 { return xxhash.Sum64(img.data) }

// Flush writes the dirty ranges back to the file the image came from.
func (img *Image) Flush(ctx context.Context, mode dirty.FlushMode) error {
	if img.path == "" {
		return errors.New("rom: flush: image has no backing file")
	}
	if img.dt.Empty() {
		return nil
	}
	f, err := os.OpenFile(img.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("rom: flush: %w", err)
	}
	if err := img.dt.Flush(ctx, f, img.data, mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("rom: flush %s: %w", img.path, err)
	}
	return f.Close()
}

// Emit hands the whole image to w.
func (img *Image) Emit(w writer.Writer) error {
	return w.WriteROM(img.data)
}

// WriteFile replaces path with the whole image through a temporary file and a
// rename, then makes path the image's backing file.
func (img *Image) WriteFile(path string) error {
	if err := img.Emit(&writer.FileWriter{Path: path, Perm: 0o644}); err != nil {
		return fmt.Errorf("rom: %w", err)
	}
	img.path = path
	img.dt.Reset()
	return nil
}
