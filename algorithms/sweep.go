package algorithms

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ObjectiveSample is one point of an option's objective line.
type ObjectiveSample struct {
	Option    EncodedOption
	BufferS   float64
	Objective float64
}

// DecisionSample records the option chosen at one buffer level.
type DecisionSample struct {
	BufferS float64
	Chosen  EncodedOption
}

// bufferLevels returns samples+1 evenly spaced levels in [0, maxBufferS].
func bufferLevels(maxBufferS float64, samples int) ([]float64, error) {
	if samples < 1 {
		return nil, fmt.Errorf("sweep needs at least 1 sample, got %d", samples)
	}
	if !(maxBufferS > 0) {
		return nil, fmt.Errorf("sweep needs a positive buffer range, got %gs", maxBufferS)
	}
	return floats.Span(make([]float64, samples+1), 0, maxBufferS), nil
}

// SweepObjectives evaluates every option's objective across the buffer
// range. Objectives are linear in buffer, so a few samples suffice.
func SweepObjectives(p Parameters, ladder Ladder, chunkDurationS, maxBufferS float64, samples int) ([]ObjectiveSample, error) {
	levels, err := bufferLevels(maxBufferS, samples)
	if err != nil {
		return nil, err
	}
	out := make([]ObjectiveSample, 0, len(ladder)*len(levels))
	for _, opt := range ladder {
		for _, bufS := range levels {
			out = append(out, ObjectiveSample{
				Option:    opt,
				BufferS:   bufS,
				Objective: Objective(p, opt, bufS/chunkDurationS),
			})
		}
	}
	return out, nil
}

// SweepDecisions records the chosen option across the buffer range. The
// result is a step function, so use many samples.
func SweepDecisions(p Parameters, ladder Ladder, chunkDurationS, maxBufferS float64, samples int) ([]DecisionSample, error) {
	levels, err := bufferLevels(maxBufferS, samples)
	if err != nil {
		return nil, err
	}
	out := make([]DecisionSample, 0, len(levels))
	for _, bufS := range levels {
		chosen, err := ChooseMaxObjective(p, ladder, bufS/chunkDurationS)
		if err != nil {
			return nil, err
		}
		out = append(out, DecisionSample{BufferS: bufS, Chosen: chosen})
	}
	return out, nil
}
