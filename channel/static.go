package channel

import (
	"fmt"

	"github.com/uccmisl/godash-bola/media"
)

// Rung is one entry of a static ladder.
type Rung struct {
	Format media.VideoFormat
	Chunk
}

// Static serves the same ladder for every timestamp. It backs decisions when
// no live encodings exist yet, e.g. with an averaged ladder from config.
type Static struct {
	name           string
	chunkDurationS float64
	formats        []media.VideoFormat
	rungs          map[media.VideoFormat]Chunk
}

func NewStatic(name string, chunkDurationS float64, rungs []Rung) (*Static, error) {
	if !(chunkDurationS > 0) {
		return nil, fmt.Errorf("static channel %s: chunk duration must be positive", name)
	}
	s := &Static{
		name:           name,
		chunkDurationS: chunkDurationS,
		rungs:          make(map[media.VideoFormat]Chunk, len(rungs)),
	}
	for _, r := range rungs {
		if _, dup := s.rungs[r.Format]; dup {
			return nil, fmt.Errorf("static channel %s: duplicate format %s", name, r.Format)
		}
		s.formats = append(s.formats, r.Format)
		s.rungs[r.Format] = r.Chunk
	}
	return s, nil
}

func (s *Static) Name() string           { return s.name }
func (s *Static) ChunkDuration() float64 { return s.chunkDurationS }

func (s *Static) Formats() []media.VideoFormat {
	return append([]media.VideoFormat(nil), s.formats...)
}

func (s *Static) Size(vf media.VideoFormat, _ uint64) (uint64, error) {
	c, ok := s.rungs[vf]
	if !ok {
		return 0, fmt.Errorf("%w: %s on static channel %s", ErrUnknownFormat, vf, s.name)
	}
	return c.Size, nil
}

func (s *Static) Quality(vf media.VideoFormat, _ uint64) (float64, error) {
	c, ok := s.rungs[vf]
	if !ok {
		return 0, fmt.Errorf("%w: %s on static channel %s", ErrUnknownFormat, vf, s.name)
	}
	return c.SSIM, nil
}
