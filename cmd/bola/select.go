package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uccmisl/godash-bola/algorithms"
	"github.com/uccmisl/godash-bola/logging"
	"github.com/uccmisl/godash-bola/metrics"
	"github.com/uccmisl/godash-bola/qlog"
)

type staticClient struct {
	bufferS float64
	ts      uint64
}

func (c staticClient) PlaybackBuffer() float64   { return c.bufferS }
func (c staticClient) NextChunk() (uint64, bool) { return c.ts, true }

func newSelectCmd(opts *rootOptions) *cobra.Command {
	var client staticClient
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Run the configured algorithm once against the configured ladder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ch, err := cfg.StaticChannel(staticChannelName)
			if err != nil {
				return err
			}

			algoOpts := []algorithms.Option{
				algorithms.WithObserver(metrics.Recorder{}),
				algorithms.WithDebugLog(cfg.Log.Level == "debug"),
			}
			var tracer *qlog.StreamTracer
			if cfg.Trace.Path != "" {
				f, err := os.Create(cfg.Trace.Path)
				if err != nil {
					return fmt.Errorf("create trace: %w", err)
				}
				tracer = qlog.NewStreamTracer(f, qlog.PerspectiveServer, qlog.StreamID(ch.Name()))
				algoOpts = append(algoOpts, algorithms.WithObserver(tracer))

				stats := qlog.NewBufferStats()
				stats.PlayoutTime = seconds(client.bufferS)
				stats.PlayoutChunks = client.bufferS / ch.ChunkDuration()
				stats.MaxTime = seconds(cfg.MaxBufferS)
				tracer.UpdateBufferOccupancy(qlog.MediaTypeVideo, stats)
			}

			algo, err := algorithms.New(cfg.Algorithm, client, ch, cfg.Settings(), algoOpts...)
			if err != nil {
				return err
			}
			vf, selectErr := algo.SelectVideoFormat()
			if tracer != nil {
				if err := tracer.Close(); err != nil {
					return err
				}
			}
			if selectErr != nil {
				return selectErr
			}

			l := logging.WithComponent("cli")
			l.Info().Str("algorithm", cfg.Algorithm).Float64("buffer_s", client.bufferS).Stringer("format", vf).Msg("selected")
			fmt.Fprintln(cmd.OutOrStdout(), vf)
			return nil
		},
	}
	cmd.Flags().Float64Var(&client.bufferS, "buffer", 0, "client playback buffer in seconds")
	cmd.Flags().Uint64Var(&client.ts, "ts", 0, "timestamp of the chunk to decide")
	return cmd
}
