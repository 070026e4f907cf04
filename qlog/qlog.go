package qlog

import (
	"bytes"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/uccmisl/godash-bola/algorithms"
	"github.com/uccmisl/godash-bola/logging"
)

// When building a binary from this repository, the version can be set using the following go build flag:
// -ldflags="-X github.com/uccmisl/godash-bola/qlog.goDashVersion=foobar"
var goDashVersion = "(devel)"

func init() {
	if goDashVersion != "(devel)" { // variable set by ldflags
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok { // no build info available
		return
	}
	for _, d := range info.Deps {
		if d.Path == "github.com/uccmisl/godash-bola" {
			goDashVersion = d.Version
			if d.Replace != nil {
				if len(d.Replace.Version) > 0 {
					goDashVersion = d.Replace.Version
				} else {
					goDashVersion += " (replaced)"
				}
			}
			break
		}
	}
}

const eventChanSize = 50

type Tracer struct {
	getLogWriter func(p Perspective, streamID string) io.WriteCloser
}

// NewTracer creates a new qlog tracer.
func NewTracer(getLogWriter func(p Perspective, streamID string) io.WriteCloser) *Tracer {
	return &Tracer{getLogWriter: getLogWriter}
}

// TracerForStream returns nil when getLogWriter has no writer for the stream.
func (t *Tracer) TracerForStream(p Perspective, sid StreamID) *StreamTracer {
	if w := t.getLogWriter(p, sid.String()); w != nil {
		return NewStreamTracer(w, p, sid)
	}
	return nil
}

// A StreamTracer writes the ABR events of one stream as NDJSON: a header
// line followed by one event per line. Encoding happens on a background
// goroutine; the first write error stops output and is returned by Close.
type StreamTracer struct {
	mutex sync.Mutex

	w             io.WriteCloser
	sid           StreamID
	perspective   Perspective
	referenceTime time.Time

	events     chan event
	encodeErr  error
	runStopped chan struct{}
	closeOnce  sync.Once
	closeErr   error
}

var _ algorithms.Observer = &StreamTracer{}

func NewStreamTracer(w io.WriteCloser, p Perspective, sid StreamID) *StreamTracer {
	t := &StreamTracer{
		w:             w,
		perspective:   p,
		sid:           sid,
		runStopped:    make(chan struct{}),
		events:        make(chan event, eventChanSize),
		referenceTime: time.Now(),
	}
	go t.run(t.events)
	return t
}

func (t *StreamTracer) run(events <-chan event) {
	defer close(t.runStopped)
	buf := &bytes.Buffer{}
	enc := gojay.NewEncoder(buf)
	tl := &topLevel{
		trace: trace{
			VantagePoint: vantagePoint{Name: t.sid.String(), Type: t.perspective},
			CommonFields: commonFields{
				ReferenceTime: t.referenceTime,
			},
		},
	}
	if err := enc.Encode(tl); err != nil {
		panic(fmt.Sprintf("qlog encoding into a bytes.Buffer failed: %s", err))
	}
	if err := buf.WriteByte('\n'); err != nil {
		panic(fmt.Sprintf("qlog encoding into a bytes.Buffer failed: %s", err))
	}
	if _, err := t.w.Write(buf.Bytes()); err != nil {
		t.encodeErr = err
	}
	enc = gojay.NewEncoder(t.w)
	for ev := range events {
		if t.encodeErr != nil { // if encoding failed, just continue draining the event channel
			continue
		}
		if err := enc.Encode(ev); err != nil {
			t.encodeErr = err
			continue
		}
		if _, err := t.w.Write([]byte{'\n'}); err != nil {
			t.encodeErr = err
		}
	}
}

// Close flushes pending events and closes the writer. Events recorded after
// Close are dropped.
func (t *StreamTracer) Close() error {
	t.closeOnce.Do(func() {
		t.closeErr = t.export()
		if t.closeErr != nil {
			l := logging.WithComponent("qlog")
			l.Error().Err(t.closeErr).Str("stream", t.sid.String()).Msg("exporting qlog failed")
		}
	})
	return t.closeErr
}

// export writes a qlog.
func (t *StreamTracer) export() error {
	t.mutex.Lock()
	close(t.events)
	t.events = nil
	t.mutex.Unlock()
	<-t.runStopped
	if t.encodeErr != nil {
		_ = t.w.Close()
		return t.encodeErr
	}
	return t.w.Close()
}

// recordEvent must be called with the mutex held.
func (t *StreamTracer) recordEvent(eventTime time.Time, details eventDetails) {
	if t.events == nil {
		return
	}
	t.events <- event{
		RelativeTime: eventTime.Sub(t.referenceTime),
		eventDetails: details,
	}
}

func (t *StreamTracer) Debug(name, msg string) {
	t.mutex.Lock()
	t.recordEvent(time.Now(), &eventGeneric{
		name: name,
		msg:  msg,
	})
	t.mutex.Unlock()
}

// ABR

func (t *StreamTracer) ParametersCalculated(channel string, ts uint64, bounds algorithms.BufferBounds, sol algorithms.Solution) {
	p, solved := sol.Parameters()
	t.mutex.Lock()
	t.recordEvent(time.Now(), &eventParametersUpdated{
		channel:   channel,
		ts:        ts,
		kind:      sol.Kind.String(),
		minChunks: bounds.MinChunks,
		maxChunks: bounds.MaxChunks,
		v:         p.V,
		gp:        p.Gp,
		solved:    solved,
	})
	t.mutex.Unlock()
}

func (t *StreamTracer) FormatSelected(channel string, ts uint64, chosen algorithms.EncodedOption, bufferChunks float64) {
	t.mutex.Lock()
	t.recordEvent(time.Now(), &eventFormatSelected{
		channel:      channel,
		ts:           ts,
		format:       chosen.Format.String(),
		size:         chosen.Size,
		utility:      chosen.Utility,
		bufferChunks: bufferChunks,
	})
	t.mutex.Unlock()
}

// RecordObjectiveSweep writes the objective lines of a ladder.
func (t *StreamTracer) RecordObjectiveSweep(samples []algorithms.ObjectiveSample) {
	now := time.Now()
	t.mutex.Lock()
	for _, s := range samples {
		t.recordEvent(now, &eventObjectiveSample{
			format:    s.Option.Format.String(),
			size:      s.Option.Size,
			utility:   s.Option.Utility,
			bufferS:   s.BufferS,
			objective: s.Objective,
		})
	}
	t.mutex.Unlock()
}

// RecordDecisionSweep writes the chosen size at each sampled buffer level.
func (t *StreamTracer) RecordDecisionSweep(samples []algorithms.DecisionSample) {
	now := time.Now()
	t.mutex.Lock()
	for _, s := range samples {
		t.recordEvent(now, &eventDecisionSample{
			bufferS: s.BufferS,
			format:  s.Chosen.Format.String(),
			size:    s.Chosen.Size,
		})
	}
	t.mutex.Unlock()
}

// Buffer

func (t *StreamTracer) UpdateBufferOccupancy(mediaType MediaType, bufferStats BufferStats) {
	t.mutex.Lock()
	t.recordEvent(time.Now(), &eventBufferOccupancyUpdated{mediaType: mediaType, bufferStats: bufferStats})
	t.mutex.Unlock()
}
