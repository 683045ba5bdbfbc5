package alloc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/romkit/internal/format"
	"github.com/joshuapare/romkit/rom"
)

// State is the phase of a Sequence.
type State int

const (
	EmittingData State = iota
	EmittingManifest
	Done
)

func (s State) String() string {
	switch s {
	case EmittingData:
		return "emitting-data"
	case EmittingManifest:
		return "emitting-manifest"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ManifestFunc builds a manifest payload from the payload addresses of the data
// chunks, in emission order.
type ManifestFunc func(addrs []rom.Address) ([]byte, error)

// PointerTable is a ManifestFunc that lists each address as a tagged 32-bit
// little-endian pointer.
func PointerTable(addrs []rom.Address) ([]byte, error) {
	out := make([]byte, len(addrs)*format.PointerSize)
	for i, a := range addrs {
		format.PutU32(out, i*format.PointerSize, a.Pointer())
	}
	return out, nil
}

// Sequence emits a fixed list of data chunks followed by an optional manifest
// chunk. The manifest payload is built lazily once every data address is known.
type Sequence struct {
	data     []*Chunk
	manifest *Chunk
	build    ManifestFunc

	state State
	next  int
	addrs []rom.Address // payload addresses of placed data chunks
	built bool
}

// NewSequence returns a Source over data. manifest may be nil, in which case the
// sequence ends after the last data chunk. build is required when manifest is set.
func NewSequence(data []*Chunk, manifest *Chunk, build ManifestFunc) (*Sequence, error) {
	if manifest != nil && build == nil {
		return nil, errors.New("alloc: manifest chunk without a ManifestFunc")
	}
	for _, c := range data {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	s := &Sequence{data: data, manifest: manifest, build: build}
	s.Reset()
	return s, nil
}

// State returns the current phase.
func (s *Sequence) State() State { return s.state }

// Addrs returns the payload addresses of the data chunks placed so far.
func (s *Sequence) Addrs() []rom.Address { return s.addrs }

// Current implements Source.
func (s *Sequence) Current() (*Chunk, error) {
	switch s.state {
	case EmittingData:
		return s.data[s.next], nil
	case EmittingManifest:
		if !s.built {
			payload, err := s.build(s.addrs)
			if err != nil {
				return nil, fmt.Errorf("alloc: build manifest: %w", err)
			}
			s.manifest.Payload = payload
			if err := s.manifest.Validate(); err != nil {
				return nil, err
			}
			s.built = true
		}
		return s.manifest, nil
	default:
		return nil, nil
	}
}

// Placed implements Source.
func (s *Sequence) Placed(_ *Chunk, at rom.Address) {
	switch s.state {
	case EmittingData:
		s.addrs = append(s.addrs, at+format.ChunkHeaderSize)
		s.next++
		if s.next == len(s.data) {
			s.state = s.afterData()
		}
	case EmittingManifest:
		s.state = Done
	case Done:
	}
}

// Reset implements Source.
func (s *Sequence) Reset() {
	s.next = 0
	s.addrs = s.addrs[:0]
	s.built = false
	if s.manifest != nil {
		s.manifest.Payload = nil
	}
	if len(s.data) == 0 {
		s.state = s.afterData()
		return
	}
	s.state = EmittingData
}

func (s *Sequence) afterData() State {
	if s.manifest != nil {
		return EmittingManifest
	}
	return Done
}
