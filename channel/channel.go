// Package channel holds the encoded chunks of a channel, indexed by video
// timestamp and format.
package channel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/uccmisl/godash-bola/media"
)

var (
	ErrUnknownChunk  = errors.New("unknown chunk")
	ErrUnknownFormat = errors.New("unknown video format")
)

// Chunk is one encoded chunk of one format.
type Chunk struct {
	Size uint64  // bytes
	SSIM float64 // raw index in [0, 1]
}

// Channel is a live catalog. It is safe for concurrent use.
type Channel struct {
	name      string
	timescale uint64
	vduration uint64

	mu      sync.RWMutex
	formats []media.VideoFormat
	chunks  map[uint64]map[media.VideoFormat]Chunk
}

// New returns an empty channel whose chunks last vduration/timescale seconds.
func New(name string, timescale, vduration uint64, formats []media.VideoFormat) (*Channel, error) {
	if timescale == 0 || vduration == 0 {
		return nil, fmt.Errorf("channel %s: timescale and vduration must be positive", name)
	}
	return &Channel{
		name:      name,
		timescale: timescale,
		vduration: vduration,
		formats:   append([]media.VideoFormat(nil), formats...),
		chunks:    make(map[uint64]map[media.VideoFormat]Chunk),
	}, nil
}

func (c *Channel) Name() string { return c.name }

func (c *Channel) ChunkDuration() float64 {
	return float64(c.vduration) / float64(c.timescale)
}

// Formats returns a copy of the channel's formats.
func (c *Channel) Formats() []media.VideoFormat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]media.VideoFormat(nil), c.formats...)
}

// AddChunk records the chunk of format vf at ts. vf must be one of the
// channel's formats.
func (c *Channel) AddChunk(ts uint64, vf media.VideoFormat, chunk Chunk) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasFormat(vf) {
		return fmt.Errorf("%w: %s on channel %s", ErrUnknownFormat, vf, c.name)
	}
	byFormat, ok := c.chunks[ts]
	if !ok {
		byFormat = make(map[media.VideoFormat]Chunk, len(c.formats))
		c.chunks[ts] = byFormat
	}
	byFormat[vf] = chunk
	return nil
}

// Evict drops every chunk before ts.
func (c *Channel) Evict(ts uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for t := range c.chunks {
		if t < ts {
			delete(c.chunks, t)
		}
	}
}

func (c *Channel) Size(vf media.VideoFormat, ts uint64) (uint64, error) {
	chunk, err := c.chunk(vf, ts)
	if err != nil {
		return 0, err
	}
	return chunk.Size, nil
}

func (c *Channel) Quality(vf media.VideoFormat, ts uint64) (float64, error) {
	chunk, err := c.chunk(vf, ts)
	if err != nil {
		return 0, err
	}
	return chunk.SSIM, nil
}

func (c *Channel) chunk(vf media.VideoFormat, ts uint64) (Chunk, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	byFormat, ok := c.chunks[ts]
	if !ok {
		return Chunk{}, fmt.Errorf("%w: ts %d on channel %s", ErrUnknownChunk, ts, c.name)
	}
	chunk, ok := byFormat[vf]
	if !ok {
		return Chunk{}, fmt.Errorf("%w: %s at ts %d on channel %s", ErrUnknownFormat, vf, ts, c.name)
	}
	return chunk, nil
}

func (c *Channel) hasFormat(vf media.VideoFormat) bool {
	for _, f := range c.formats {
		if f == vf {
			return true
		}
	}
	return false
}
