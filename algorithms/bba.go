/*
* Arno Verstraete
 */

package algorithms

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/uccmisl/godash-bola/logging"
	"github.com/uccmisl/godash-bola/media"
)

// BBA is the buffer-based baseline, mapping the buffer cushion linearly onto
// the range of chunk sizes offered for the next chunk.
type BBA struct {
	client   Client
	channel  Channel
	settings Settings

	observer Observer
	log      zerolog.Logger
	debugLog bool
}

var _ ABRAlgo = (*BBA)(nil)

func NewBBA(client Client, channel Channel, settings Settings, opts ...Option) (*BBA, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	o := newOptions(NameBBA, opts)
	return &BBA{
		client:   client,
		channel:  channel,
		settings: settings,
		observer: o.observer,
		log:      o.logger,
		debugLog: o.debugLog,
	}, nil
}

func (b *BBA) SelectVideoFormat() (media.VideoFormat, error) {
	chunkDurationS := b.channel.ChunkDuration()
	if !(chunkDurationS > 0) {
		return media.VideoFormat{}, fmt.Errorf("%w: chunk duration %gs", ErrInvalidConfiguration, chunkDurationS)
	}
	bufferS := math.Max(b.client.PlaybackBuffer(), 0)

	nextTS, ok := b.client.NextChunk()
	if !ok {
		return media.VideoFormat{}, ErrNoNextChunk
	}
	formats := b.channel.Formats()
	if len(formats) == 0 {
		return media.VideoFormat{}, fmt.Errorf("%w: %s", ErrNoFormats, b.channel.Name())
	}

	ladder, err := BuildLadder(b.channel, formats, nextTS)
	if err != nil {
		return media.VideoFormat{}, err
	}
	SortLadder(ladder)

	// If this hits there only fits one chunk in the reservoir, which could be too little
	if chunkDurationS > 0.1*b.settings.MaxBufferS/2 {
		logging.DebugPrint(b.debugLog, "DEBUG: ", "The buffer is relatively small for the current chunk duration")
	}

	idx := BBAIndex(bufferS, b.settings.MaxBufferS, ladderSizes(ladder))
	chosen := ladder[idx]
	b.log.Debug().
		Str("channel", b.channel.Name()).
		Uint64("ts", nextTS).
		Float64("buffer_s", bufferS).
		Stringer("format", chosen.Format).
		Msg("selected format")

	b.observer.FormatSelected(b.channel.Name(), nextTS, chosen, bufferS/chunkDurationS)
	return chosen.Format, nil
}

/*
* BBAIndex selects an index into sizes (sorted ascending) according to the
* BBA algorithm, with static reservoirs of 10% of the maximum buffer.
 */
func BBAIndex(bufferS float64, maxBufferS float64, sizes []uint64) int {
	if len(sizes) == 0 {
		return 0
	}
	lowest, highest := 0, len(sizes)-1

	// Static reservoirs
	reservoirLower := 0.1 * maxBufferS
	reservoirUpper := reservoirLower

	// If we are in the lower reservoir, select the smallest chunk
	if reservoirLower >= bufferS {
		return lowest
	} else if maxBufferS-reservoirUpper <= bufferS {
		// If we are in the upper reservoir, select the largest chunk
		return highest
	}

	// Available size boundaries
	r1 := float64(LowestSize(sizes))
	rMax := float64(HighestSize(sizes))

	// Buffer cushion
	bm := maxBufferS - reservoirLower - reservoirUpper
	percentage := (bufferS - reservoirLower) / bm

	// Map to a size
	desired := percentage*(rMax-r1) + r1

	// Choose the largest chunk that fits
	return SelectIndexWithSize(desired, sizes)
}

func LowestSize(sizes []uint64) uint64 {
	lowest := uint64(math.MaxUint64)
	for _, s := range sizes {
		if s < lowest {
			lowest = s
		}
	}
	return lowest
}

func HighestSize(sizes []uint64) uint64 {
	var highest uint64
	for _, s := range sizes {
		if s > highest {
			highest = s
		}
	}
	return highest
}

// SelectIndexWithSize returns the index of the largest size not exceeding
// desired, or 0 when none fits.
func SelectIndexWithSize(desired float64, sizes []uint64) int {
	chosen := -1
	for i, s := range sizes {
		if float64(s) > desired {
			continue
		}
		if chosen < 0 || s >= sizes[chosen] {
			chosen = i
		}
	}
	if chosen < 0 {
		return 0
	}
	return chosen
}

func ladderSizes(ladder Ladder) []uint64 {
	out := make([]uint64, len(ladder))
	for i, opt := range ladder {
		out[i] = opt.Size
	}
	return out
}
