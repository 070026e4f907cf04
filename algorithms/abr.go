package algorithms

import (
	"fmt"

	"github.com/uccmisl/godash-bola/media"
)

// Algorithm names accepted by New.
const (
	NameBolaBasic = "bola_basic"
	NameBBA       = "bba"
)

// ABRAlgo picks the format of the next chunk for one client.
type ABRAlgo interface {
	SelectVideoFormat() (media.VideoFormat, error)
}

// Client is the streaming session the algorithm decides for.
type Client interface {
	// PlaybackBuffer is the client's buffered video in seconds. It may be
	// reported negative during stalls.
	PlaybackBuffer() float64
	// NextChunk returns the timestamp of the chunk to be sent next.
	NextChunk() (uint64, bool)
}

// Channel is the catalog of encoded chunks. Implementations must be safe for
// concurrent reads when shared between sessions.
type Channel interface {
	Name() string
	// ChunkDuration is the duration of one video chunk in seconds.
	ChunkDuration() float64
	Formats() []media.VideoFormat
	Size(vf media.VideoFormat, ts uint64) (uint64, error)
	// Quality is the raw SSIM index of the chunk in [0, 1].
	Quality(vf media.VideoFormat, ts uint64) (float64, error)
}

// Settings are the process-wide buffer thresholds, in seconds.
type Settings struct {
	MinBufferS float64
	MaxBufferS float64
}

func (s Settings) validate() error {
	if s.MinBufferS < 0 || s.MinBufferS >= s.MaxBufferS {
		return fmt.Errorf("%w: need 0 <= min buffer (%gs) < max buffer (%gs)", ErrInvalidConfiguration, s.MinBufferS, s.MaxBufferS)
	}
	return nil
}

// Bounds converts the thresholds to chunks of the given duration.
func (s Settings) Bounds(chunkDurationS float64) BufferBounds {
	return BufferBounds{
		MinChunks: s.MinBufferS / chunkDurationS,
		MaxChunks: s.MaxBufferS / chunkDurationS,
	}
}

// New returns the algorithm registered under name.
func New(name string, client Client, channel Channel, settings Settings, opts ...Option) (ABRAlgo, error) {
	var (
		algo ABRAlgo
		err  error
	)
	switch name {
	case NameBolaBasic:
		algo, err = NewBolaBasic(client, channel, settings, opts...)
	case NameBBA:
		algo, err = NewBBA(client, channel, settings, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgo, name)
	}
	if err != nil {
		return nil, err
	}
	return algo, nil
}
