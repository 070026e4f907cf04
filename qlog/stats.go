package qlog

import "time"

// BufferStats describes a client's buffer. Negative optional fields are
// omitted from the trace.
type BufferStats struct {
	PlayoutTime   time.Duration
	PlayoutBytes  int64
	PlayoutChunks float64
	MaxTime       time.Duration
	MaxBytes      int64
	MaxChunks     float64
}

func NewBufferStats() BufferStats {
	return BufferStats{
		PlayoutTime:   0,
		PlayoutBytes:  -1,
		PlayoutChunks: -1,
		MaxTime:       0,
		MaxBytes:      -1,
		MaxChunks:     -1,
	}
}
