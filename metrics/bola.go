// Package metrics exports ABR decisions to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/uccmisl/godash-bola/algorithms"
)

var (
	parameterSolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "godash_bola_parameter_solutions_total",
		Help: "BOLA parameter solves by channel and outcome (solved, degenerate)",
	}, []string{"channel", "kind"})

	selections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "godash_abr_selections_total",
		Help: "Chosen video formats by channel",
	}, []string{"channel", "format"})

	parameterV = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "godash_bola_parameter_v",
		Help: "Most recently solved BOLA V per channel",
	}, []string{"channel"})

	parameterGp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "godash_bola_parameter_gp",
		Help: "Most recently solved BOLA gamma*p per channel",
	}, []string{"channel"})

	bufferChunks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "godash_abr_buffer_chunks",
		Help:    "Client buffer in chunks at selection time",
		Buckets: prometheus.LinearBuckets(0, 1, 16),
	}, []string{"channel"})
)

// Recorder is an algorithms.Observer that updates the package metrics.
type Recorder struct{}

var _ algorithms.Observer = Recorder{}

func (Recorder) ParametersCalculated(channel string, _ uint64, _ algorithms.BufferBounds, sol algorithms.Solution) {
	parameterSolutions.WithLabelValues(channel, sol.Kind.String()).Inc()
	if p, ok := sol.Parameters(); ok {
		parameterV.WithLabelValues(channel).Set(p.V)
		parameterGp.WithLabelValues(channel).Set(p.Gp)
	}
}

func (Recorder) FormatSelected(channel string, _ uint64, chosen algorithms.EncodedOption, buf float64) {
	selections.WithLabelValues(channel, chosen.Format.String()).Inc()
	bufferChunks.WithLabelValues(channel).Observe(buf)
}
