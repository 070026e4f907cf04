package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBBAIndex(t *testing.T) {
	sizes := []uint64{100, 200, 400, 800}
	tests := []struct {
		name    string
		bufferS float64
		want    int
	}{
		{"empty", 0, 0},
		{"lower reservoir", 1.5, 0},
		{"cushion start", 1.6, 0},
		{"cushion middle", 7.5, 2},
		{"cushion high", 13, 2},
		{"upper reservoir", 13.5, 3},
		{"full", 15, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BBAIndex(tt.bufferS, 15, sizes))
		})
	}
	assert.Equal(t, 0, BBAIndex(5, 15, nil))
}

func TestBBAIndexNonDecreasing(t *testing.T) {
	prev := 0
	for buf := 0.0; buf <= 15; buf += 0.05 {
		idx := BBAIndex(buf, 15, defaultSizes)
		assert.GreaterOrEqual(t, idx, prev, "buffer %v", buf)
		prev = idx
	}
	assert.Equal(t, len(defaultSizes)-1, prev)
}

func TestSizeHelpers(t *testing.T) {
	sizes := []uint64{300, 100, 200}
	assert.Equal(t, uint64(100), LowestSize(sizes))
	assert.Equal(t, uint64(300), HighestSize(sizes))
	assert.Equal(t, 2, SelectIndexWithSize(250, sizes))
	assert.Equal(t, 0, SelectIndexWithSize(50, []uint64{100, 200}))
}

func TestBBASelectVideoFormat(t *testing.T) {
	obs := &recordingObserver{}
	client := &fakeClient{bufferS: 7.5}
	bba, err := NewBBA(client, newDefaultChannel(), defaultSettings, WithObserver(obs), WithDebugLog(true))
	require.NoError(t, err)

	got, err := bba.SelectVideoFormat()
	require.NoError(t, err)
	assert.Equal(t, formatN(6), got)
	assert.Empty(t, obs.solutions)
	require.Len(t, obs.selections, 1)

	client.bufferS = -3
	got, err = bba.SelectVideoFormat()
	require.NoError(t, err)
	assert.Equal(t, formatN(0), got)

	client.bufferS = 14
	got, err = bba.SelectVideoFormat()
	require.NoError(t, err)
	assert.Equal(t, formatN(9), got)
}
