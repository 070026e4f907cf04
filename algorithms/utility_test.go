package algorithms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtility(t *testing.T) {
	tests := []struct {
		name string
		ssim float64
		want float64
	}{
		{"zero", 0, 0},
		{"negative", -0.3, 0},
		{"nan", math.NaN(), 0},
		{"half", 0.5, 10 * math.Log10(2)},
		{"ninety", 0.9, 10},
		{"ninety nine", 0.99, 20},
		{"perfect", 1, MaxUtilityDB},
		{"above one", 1.2, MaxUtilityDB},
		{"near perfect is capped", 1 - 1e-9, MaxUtilityDB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Utility(tt.ssim), 1e-9)
		})
	}
}

func TestUtilityMonotonic(t *testing.T) {
	prev := Utility(0)
	for ssim := 0.0; ssim <= 1.0; ssim += 0.0005 {
		u := Utility(ssim)
		assert.GreaterOrEqual(t, u, prev, "ssim %v", ssim)
		assert.GreaterOrEqual(t, u, 0.0)
		assert.LessOrEqual(t, u, MaxUtilityDB)
		prev = u
	}
}
