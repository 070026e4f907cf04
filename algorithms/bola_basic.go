package algorithms

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/uccmisl/godash-bola/media"
)

// BolaBasic selects formats with BOLA, recomputing V and gp for every chunk
// from the ladder offered for that chunk.
type BolaBasic struct {
	client   Client
	channel  Channel
	settings Settings

	observer Observer
	log      zerolog.Logger
}

var _ ABRAlgo = (*BolaBasic)(nil)

func NewBolaBasic(client Client, channel Channel, settings Settings, opts ...Option) (*BolaBasic, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	o := newOptions(NameBolaBasic, opts)
	return &BolaBasic{
		client:   client,
		channel:  channel,
		settings: settings,
		observer: o.observer,
		log:      o.logger,
	}, nil
}

func (b *BolaBasic) SelectVideoFormat() (media.VideoFormat, error) {
	chunkDurationS := b.channel.ChunkDuration()
	if !(chunkDurationS > 0) {
		return media.VideoFormat{}, fmt.Errorf("%w: chunk duration %gs", ErrInvalidConfiguration, chunkDurationS)
	}
	clientBufChunks := math.Max(b.client.PlaybackBuffer(), 0) / chunkDurationS

	nextTS, ok := b.client.NextChunk()
	if !ok {
		return media.VideoFormat{}, ErrNoNextChunk
	}

	formats := b.channel.Formats()
	switch len(formats) {
	case 0:
		return media.VideoFormat{}, fmt.Errorf("%w: %s", ErrNoFormats, b.channel.Name())
	case 1:
		b.observer.FormatSelected(b.channel.Name(), nextTS, EncodedOption{Format: formats[0]}, clientBufChunks)
		return formats[0], nil
	}

	/* 1. Get info for each encoded format */
	ladder, err := BuildLadder(b.channel, formats, nextTS)
	if err != nil {
		return media.VideoFormat{}, err
	}

	/* 2. Solve for V and gp at this chunk's duration */
	bounds := b.settings.Bounds(chunkDurationS)
	sol, err := CalculateParameters(bounds, ladder)
	if err != nil {
		return media.VideoFormat{}, fmt.Errorf("channel %s ts %d: %w", b.channel.Name(), nextTS, err)
	}
	b.observer.ParametersCalculated(b.channel.Name(), nextTS, bounds, sol)

	/* 3. Choose format with max objective */
	var chosen EncodedOption
	params, solved := sol.Parameters()
	if solved {
		chosen, err = ChooseMaxObjective(params, ladder, clientBufChunks)
		if err != nil {
			return media.VideoFormat{}, err
		}
		b.log.Debug().
			Str("channel", b.channel.Name()).
			Uint64("ts", nextTS).
			Float64("v", params.V).
			Float64("gp", params.Gp).
			Float64("buffer_chunks", clientBufChunks).
			Stringer("format", chosen.Format).
			Msg("selected format")
	} else {
		chosen = chooseDegenerate(ladder)
		b.log.Warn().
			Str("channel", b.channel.Name()).
			Uint64("ts", nextTS).
			Uint64("size", ladder[0].Size).
			Stringer("format", chosen.Format).
			Msg("two smallest formats have equal size, falling back to higher utility")
	}

	b.observer.FormatSelected(b.channel.Name(), nextTS, chosen, clientBufChunks)
	return chosen.Format, nil
}

// BuildLadder assembles the options for chunk ts in channel format order.
// Utility is always computed from the channel's raw SSIM.
func BuildLadder(channel Channel, formats []media.VideoFormat, ts uint64) (Ladder, error) {
	ladder := make(Ladder, 0, len(formats))
	for _, vf := range formats {
		size, err := channel.Size(vf, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: size of %s at ts %d: %w", ErrMissingCatalogData, vf, ts, err)
		}
		if size == 0 {
			return nil, fmt.Errorf("%w: zero size for %s at ts %d", ErrMissingCatalogData, vf, ts)
		}
		ssim, err := channel.Quality(vf, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: quality of %s at ts %d: %w", ErrMissingCatalogData, vf, ts, err)
		}
		ladder = append(ladder, EncodedOption{Format: vf, Size: size, Utility: Utility(ssim)})
	}
	return ladder, nil
}
