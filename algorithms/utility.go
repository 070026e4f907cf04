package algorithms

import "math"

// MaxUtilityDB caps the utility of a perfect SSIM score.
const MaxUtilityDB = 60.0

// Utility maps a raw SSIM index in [0, 1] to decibels in [0, MaxUtilityDB].
// BOLA uses the returned value directly as the utility of a format.
func Utility(rawSSIM float64) float64 {
	return ssimDB(rawSSIM)
}

func ssimDB(rawSSIM float64) float64 {
	if math.IsNaN(rawSSIM) || rawSSIM <= 0 {
		return 0
	}
	if rawSSIM >= 1 {
		return MaxUtilityDB
	}
	db := -10 * math.Log10(1-rawSSIM)
	return math.Min(db, MaxUtilityDB)
}
