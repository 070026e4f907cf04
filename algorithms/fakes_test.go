package algorithms

import (
	"errors"
	"math"

	"github.com/uccmisl/godash-bola/media"
)

var errNotFound = errors.New("not found")

type fakeClient struct {
	bufferS float64
	nextTS  uint64
	noNext  bool
}

func (c *fakeClient) PlaybackBuffer() float64 { return c.bufferS }
func (c *fakeClient) NextChunk() (uint64, bool) {
	if c.noNext {
		return 0, false
	}
	return c.nextTS, true
}

type fakeRung struct {
	size uint64
	ssim float64
}

type fakeChannel struct {
	name           string
	chunkDurationS float64
	formats        []media.VideoFormat
	rungs          map[media.VideoFormat]fakeRung
	noQuality      bool
}

func (c *fakeChannel) Name() string                 { return c.name }
func (c *fakeChannel) ChunkDuration() float64       { return c.chunkDurationS }
func (c *fakeChannel) Formats() []media.VideoFormat { return c.formats }

func (c *fakeChannel) Size(vf media.VideoFormat, _ uint64) (uint64, error) {
	r, ok := c.rungs[vf]
	if !ok {
		return 0, errNotFound
	}
	return r.size, nil
}

func (c *fakeChannel) Quality(vf media.VideoFormat, _ uint64) (float64, error) {
	r, ok := c.rungs[vf]
	if !ok || c.noQuality {
		return 0, errNotFound
	}
	return r.ssim, nil
}

// Averaged ladder used before live data existed.
var (
	defaultSizes = []uint64{44319, 93355, 115601, 142904, 196884, 263965, 353752, 494902, 632193, 889893}
	defaultSSIMs = []float64{0.91050748, 0.94062527, 0.94806355, 0.95498943, 0.96214503,
		0.96717277, 0.97273958, 0.97689813, 0.98004106, 0.98332605}
)

const defaultChunkDurationS = 2.002

var defaultSettings = Settings{MinBufferS: 3, MaxBufferS: 15}

func formatN(i int) media.VideoFormat {
	return media.VideoFormat{Width: uint16(100 * (i + 1)), Height: uint16(100 * (i + 1)), CRF: 24}
}

// newDefaultChannel lists formats largest first to exercise sorting.
func newDefaultChannel() *fakeChannel {
	ch := &fakeChannel{
		name:           "cbs",
		chunkDurationS: defaultChunkDurationS,
		rungs:          map[media.VideoFormat]fakeRung{},
	}
	for i := len(defaultSizes) - 1; i >= 0; i-- {
		vf := formatN(i)
		ch.formats = append(ch.formats, vf)
		ch.rungs[vf] = fakeRung{size: defaultSizes[i], ssim: defaultSSIMs[i]}
	}
	return ch
}

func defaultLadder() Ladder {
	ladder := make(Ladder, len(defaultSizes))
	for i := range defaultSizes {
		ladder[i] = EncodedOption{Format: formatN(i), Size: defaultSizes[i], Utility: Utility(defaultSSIMs[i])}
	}
	return ladder
}

// paperLadder returns the five-rung ladder of the BOLA paper, with utility
// ln(size/size_smallest), listed largest first.
func paperLadder() Ladder {
	sizes := []float64{18.00, 8.886, 4.281, 2.064, 0.993}
	ladder := make(Ladder, len(sizes))
	for i, s := range sizes {
		ladder[i] = EncodedOption{
			Format:  formatN(len(sizes) - 1 - i),
			Size:    uint64(math.Round(s / 8 * 1e6)),
			Utility: math.Log(s / sizes[len(sizes)-1]),
		}
	}
	return ladder
}

type recordingObserver struct {
	solutions  []Solution
	selections []EncodedOption
	buffers    []float64
}

func (r *recordingObserver) ParametersCalculated(_ string, _ uint64, _ BufferBounds, sol Solution) {
	r.solutions = append(r.solutions, sol)
}

func (r *recordingObserver) FormatSelected(_ string, _ uint64, chosen EncodedOption, bufferChunks float64) {
	r.selections = append(r.selections, chosen)
	r.buffers = append(r.buffers, bufferChunks)
}
