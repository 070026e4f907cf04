package channel

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AverageLadders sorts each channel's ladder ascending and averages the
// ladders index-wise into one. All ladders must have the same length.
func AverageLadders(ladders map[string][]float64) ([]float64, error) {
	if len(ladders) == 0 {
		return nil, fmt.Errorf("no ladders to average")
	}

	names := make([]string, 0, len(ladders))
	for name := range ladders {
		names = append(names, name)
	}
	sort.Strings(names)

	n := len(ladders[names[0]])
	sorted := make([][]float64, 0, len(names))
	for _, name := range names {
		l := ladders[name]
		if len(l) != n {
			return nil, fmt.Errorf("channel %s has %d rungs, %s has %d", name, len(l), names[0], n)
		}
		cp := append([]float64(nil), l...)
		sort.Float64s(cp)
		sorted = append(sorted, cp)
	}

	avg := make([]float64, n)
	column := make([]float64, len(sorted))
	for i := range avg {
		for j, l := range sorted {
			column[j] = l[i]
		}
		avg[i] = stat.Mean(column, nil)
	}
	return avg, nil
}
