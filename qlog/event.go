package qlog

import (
	"time"

	"github.com/francoispqt/gojay"
)

func milliseconds(dur time.Duration) float64 { return float64(dur.Nanoseconds()) / 1e6 }

type eventDetails interface {
	Category() category
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("time", milliseconds(e.RelativeTime))
	enc.StringKey("name", e.Category().String()+":"+e.Name())
	enc.ObjectKey("data", e.eventDetails)
}

type eventGeneric struct {
	name string
	msg  string
}

func (e eventGeneric) Category() category { return categoryGeneric }
func (e eventGeneric) Name() string       { return e.name }
func (e eventGeneric) IsNil() bool        { return false }

func (e eventGeneric) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("details", e.msg)
}

// ABR

type eventParametersUpdated struct {
	channel   string
	ts        uint64
	kind      string
	minChunks float64
	maxChunks float64
	v         float64
	gp        float64
	solved    bool
}

func (e eventParametersUpdated) Category() category { return categoryABR }
func (e eventParametersUpdated) Name() string       { return "parameters_updated" }
func (e eventParametersUpdated) IsNil() bool        { return false }

func (e eventParametersUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("channel", e.channel)
	enc.Uint64Key("ts", e.ts)
	enc.StringKey("kind", e.kind)
	enc.Float64Key("min_buffer_chunks", e.minChunks)
	enc.Float64Key("max_buffer_chunks", e.maxChunks)
	if e.solved {
		enc.Float64Key("v", e.v)
		enc.Float64Key("gp", e.gp)
	}
}

type eventFormatSelected struct {
	channel      string
	ts           uint64
	format       string
	size         uint64
	utility      float64
	bufferChunks float64
}

func (e eventFormatSelected) Category() category { return categoryABR }
func (e eventFormatSelected) Name() string       { return "format_selected" }
func (e eventFormatSelected) IsNil() bool        { return false }

func (e eventFormatSelected) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("channel", e.channel)
	enc.Uint64Key("ts", e.ts)
	enc.StringKey("format", e.format)
	if e.size > 0 {
		enc.Uint64Key("size", e.size)
		enc.Float64Key("utility", e.utility)
	}
	enc.Float64Key("buffer_chunks", e.bufferChunks)
}

// One point of an objective line, swept over buffer levels.
type eventObjectiveSample struct {
	format    string
	size      uint64
	utility   float64
	bufferS   float64
	objective float64
}

func (e eventObjectiveSample) Category() category { return categoryABR }
func (e eventObjectiveSample) Name() string       { return "objective_sample" }
func (e eventObjectiveSample) IsNil() bool        { return false }

func (e eventObjectiveSample) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("format", e.format)
	enc.Uint64Key("size", e.size)
	enc.Float64Key("utility", e.utility)
	enc.Float64Key("buffer_s", e.bufferS)
	enc.Float64Key("objective", e.objective)
}

type eventDecisionSample struct {
	bufferS float64
	format  string
	size    uint64
}

func (e eventDecisionSample) Category() category { return categoryABR }
func (e eventDecisionSample) Name() string       { return "decision_sample" }
func (e eventDecisionSample) IsNil() bool        { return false }

func (e eventDecisionSample) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("buffer_s", e.bufferS)
	enc.StringKey("format", e.format)
	enc.Uint64Key("size", e.size)
}

// Buffer

type eventBufferOccupancyUpdated struct {
	mediaType   MediaType
	bufferStats BufferStats
}

func (e eventBufferOccupancyUpdated) Category() category { return categoryBuffer }
func (e eventBufferOccupancyUpdated) Name() string       { return "occupancy_update" }
func (e eventBufferOccupancyUpdated) IsNil() bool        { return false }

func (e eventBufferOccupancyUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("media_type", e.mediaType.String())
	enc.Int64Key("playout_ms", e.bufferStats.PlayoutTime.Milliseconds())
	if e.bufferStats.PlayoutBytes >= 0 {
		enc.Int64Key("playout_bytes", e.bufferStats.PlayoutBytes)
	}
	if e.bufferStats.PlayoutChunks >= 0 {
		enc.Float64Key("playout_chunks", e.bufferStats.PlayoutChunks)
	}

	enc.Int64Key("max_ms", e.bufferStats.MaxTime.Milliseconds())
	if e.bufferStats.MaxBytes >= 0 {
		enc.Int64Key("max_bytes", e.bufferStats.MaxBytes)
	}
	if e.bufferStats.MaxChunks >= 0 {
		enc.Float64Key("max_chunks", e.bufferStats.MaxChunks)
	}
}
