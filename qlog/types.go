package qlog

import (
	"time"

	"github.com/francoispqt/gojay"
)

const (
	qlogVersion = "draft-02"
	qlogFormat  = "NDJSON"
)

// Perspective is the vantage point a trace is written from.
type Perspective int

const (
	PerspectiveServer Perspective = iota
	PerspectiveClient
)

func (p Perspective) String() string {
	switch p {
	case PerspectiveServer:
		return "server"
	case PerspectiveClient:
		return "client"
	default:
		return "unknown"
	}
}

// StreamID names the traced stream, e.g. "<channel>/<session>".
type StreamID string

func (s StreamID) String() string { return string(s) }

type MediaType int

const (
	MediaTypeVideo MediaType = iota
	MediaTypeAudio
)

func (m MediaType) String() string {
	switch m {
	case MediaTypeVideo:
		return "video"
	case MediaTypeAudio:
		return "audio"
	default:
		return "unknown"
	}
}

type category int

const (
	categoryGeneric category = iota
	categoryABR
	categoryBuffer
)

func (c category) String() string {
	switch c {
	case categoryGeneric:
		return "generic"
	case categoryABR:
		return "abr"
	case categoryBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

type topLevel struct {
	trace trace
}

func (topLevel) IsNil() bool { return false }

func (l topLevel) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("qlog_version", qlogVersion)
	enc.StringKey("qlog_format", qlogFormat)
	enc.StringKey("title", "godash qlog")
	enc.StringKey("code_version", goDashVersion)
	enc.ObjectKey("trace", l.trace)
}

type trace struct {
	VantagePoint vantagePoint
	CommonFields commonFields
}

func (trace) IsNil() bool { return false }

func (t trace) MarshalJSONObject(enc *gojay.Encoder) {
	enc.ObjectKey("vantage_point", t.VantagePoint)
	enc.ObjectKey("common_fields", t.CommonFields)
}

type vantagePoint struct {
	Name string
	Type Perspective
}

func (vantagePoint) IsNil() bool { return false }

func (p vantagePoint) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKeyOmitEmpty("name", p.Name)
	enc.StringKey("type", p.Type.String())
}

type commonFields struct {
	GroupID       string
	ReferenceTime time.Time
}

func (commonFields) IsNil() bool { return false }

func (f commonFields) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKeyOmitEmpty("group_id", f.GroupID)
	enc.Float64Key("reference_time", float64(f.ReferenceTime.UnixNano())/1e6)
	enc.StringKey("time_format", "relative")
}
