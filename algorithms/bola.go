/*
* BOLA-BASIC, with V and gamma derived from the min/max buffer level and the
* bitrate ladder instead of being fixed in advance.
 */

package algorithms

import (
	"fmt"
	"math"
	"sort"

	"github.com/uccmisl/godash-bola/media"
)

// EncodedOption is one candidate encoding of the chunk being decided.
type EncodedOption struct {
	Format  media.VideoFormat
	Size    uint64 // bytes
	Utility float64
}

// Ladder must have utility non-decreasing in size, as required by BOLA.
type Ladder []EncodedOption

// BufferBounds are expressed in chunks, which may be fractional.
type BufferBounds struct {
	MinChunks float64
	MaxChunks float64
}

type Parameters struct {
	V  float64
	Gp float64
}

type SolutionKind int

const (
	Solved SolutionKind = iota
	// Degenerate means the two smallest formats have the same size, so
	// their objectives never intersect and gp is undefined.
	Degenerate
)

func (k SolutionKind) String() string {
	switch k {
	case Solved:
		return "solved"
	case Degenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// Solution is the result of CalculateParameters. Params is only meaningful
// when Kind is Solved.
type Solution struct {
	Kind   SolutionKind
	Params Parameters
}

// Parameters returns the solved parameters and whether there were any.
func (s Solution) Parameters() (Parameters, bool) {
	return s.Params, s.Kind == Solved
}

// SortLadder orders the ladder ascending by size, then utility.
func SortLadder(ladder Ladder) {
	sort.SliceStable(ladder, func(i, j int) bool {
		if ladder[i].Size != ladder[j].Size {
			return ladder[i].Size < ladder[j].Size
		}
		return ladder[i].Utility < ladder[j].Utility
	})
}

/*
* CalculateParameters derives V and gp from the buffer bounds and the ladder:
* 1. Min buffer: the objectives of the smallest and next-smallest formats
*    intersect at bounds.MinChunks.
* 2. Max buffer: V(utility_best + gp) = bounds.MaxChunks, so the best format
*    is chosen once the buffer reaches its allowed maximum.
*
* The ladder is sorted in place; callers rely on the sorted order afterwards.
 */
func CalculateParameters(bounds BufferBounds, ladder Ladder) (Solution, error) {
	if len(ladder) < 2 {
		return Solution{}, fmt.Errorf("%w: ladder has %d formats, need at least 2", ErrInvalidConfiguration, len(ladder))
	}
	if err := bounds.validate(); err != nil {
		return Solution{}, err
	}

	SortLadder(ladder)
	smallest := ladder[0]
	secondSmallest := ladder[1]
	largest := ladder[len(ladder)-1]

	if secondSmallest.Size == smallest.Size {
		return Solution{Kind: Degenerate}, nil
	}

	minBuf, maxBuf := bounds.MinChunks, bounds.MaxChunks
	s0, s1 := float64(smallest.Size), float64(secondSmallest.Size)
	sizeDelta := float64(secondSmallest.Size - smallest.Size)

	// Size units don't affect gp. Utility units do.
	gp := (maxBuf*(s1*smallest.Utility-s0*secondSmallest.Utility) -
		largest.Utility*minBuf*sizeDelta) /
		((minBuf - maxBuf) * sizeDelta)

	v := maxBuf / (largest.Utility + gp)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Solution{}, fmt.Errorf("%w: V=%g gp=%g (smallest %d B/%.3f, largest %d B/%.3f)",
			ErrNonPositiveV, v, gp, smallest.Size, smallest.Utility, largest.Size, largest.Utility)
	}
	return Solution{Kind: Solved, Params: Parameters{V: v, Gp: gp}}, nil
}

func (b BufferBounds) validate() error {
	if math.IsNaN(b.MinChunks) || math.IsInf(b.MinChunks, 0) ||
		math.IsNaN(b.MaxChunks) || math.IsInf(b.MaxChunks, 0) {
		return fmt.Errorf("%w: non-finite buffer bounds [%g, %g]", ErrInvalidConfiguration, b.MinChunks, b.MaxChunks)
	}
	if b.MinChunks >= b.MaxChunks {
		return fmt.Errorf("%w: min buffer %g chunks >= max buffer %g chunks", ErrInvalidConfiguration, b.MinChunks, b.MaxChunks)
	}
	return nil
}

// Objective is the BOLA score of opt at the given buffer level. Size units
// change its value but not the decision.
func Objective(p Parameters, opt EncodedOption, bufferChunks float64) float64 {
	return (p.V*(opt.Utility+p.Gp) - bufferChunks) / float64(opt.Size)
}

// ChooseMaxObjective returns the option with the greatest objective. Exact
// ties go to the earliest option in ladder order.
func ChooseMaxObjective(p Parameters, ladder Ladder, bufferChunks float64) (EncodedOption, error) {
	if len(ladder) == 0 {
		return EncodedOption{}, ErrEmptyLadder
	}
	best := 0
	bestObjective := Objective(p, ladder[0], bufferChunks)
	for i := 1; i < len(ladder); i++ {
		if o := Objective(p, ladder[i], bufferChunks); o > bestObjective {
			best, bestObjective = i, o
		}
	}
	return ladder[best], nil
}

// chooseDegenerate picks between the two equal-size smallest formats of a
// sorted ladder: the higher utility wins, the smaller index on a tie.
func chooseDegenerate(ladder Ladder) EncodedOption {
	if ladder[1].Utility > ladder[0].Utility {
		return ladder[1]
	}
	return ladder[0]
}
