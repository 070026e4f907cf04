package algorithms

import (
	"github.com/rs/zerolog"

	"github.com/uccmisl/godash-bola/logging"
)

// Observer receives per-selection diagnostics. It is called synchronously on
// the selecting goroutine and must not block.
type Observer interface {
	ParametersCalculated(channel string, ts uint64, bounds BufferBounds, sol Solution)
	FormatSelected(channel string, ts uint64, chosen EncodedOption, bufferChunks float64)
}

// Observers fans out to every observer in order.
type Observers []Observer

func (obs Observers) ParametersCalculated(channel string, ts uint64, bounds BufferBounds, sol Solution) {
	for _, o := range obs {
		o.ParametersCalculated(channel, ts, bounds, sol)
	}
}

func (obs Observers) FormatSelected(channel string, ts uint64, chosen EncodedOption, bufferChunks float64) {
	for _, o := range obs {
		o.FormatSelected(channel, ts, chosen, bufferChunks)
	}
}

type nopObserver struct{}

func (nopObserver) ParametersCalculated(string, uint64, BufferBounds, Solution) {}
func (nopObserver) FormatSelected(string, uint64, EncodedOption, float64)       {}

type options struct {
	observer Observer
	logger   zerolog.Logger
	debugLog bool
}

type Option func(*options)

// WithObserver adds an observer. May be given more than once.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o == nil {
			return
		}
		if _, ok := opts.observer.(nopObserver); ok {
			opts.observer = o
			return
		}
		opts.observer = Observers{opts.observer, o}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(opts *options) { opts.logger = l }
}

// WithDebugLog enables the per-decision debug lines of the BBA variant.
func WithDebugLog(enabled bool) Option {
	return func(opts *options) { opts.debugLog = enabled }
}

func newOptions(component string, opts []Option) options {
	o := options{
		observer: nopObserver{},
		logger:   logging.WithComponent(component),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
