package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/uccmisl/godash-bola/algorithms"
	"github.com/uccmisl/godash-bola/qlog"
)

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func newSweepCmd(opts *rootOptions) *cobra.Command {
	var (
		out              string
		rangeS           float64
		objectiveSamples int
		decisionSamples  int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Write objective and decision sweeps over buffer levels as a qlog trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ladder, err := configuredLadder(cfg)
			if err != nil {
				return err
			}
			sol, err := algorithms.CalculateParameters(cfg.Settings().Bounds(cfg.ChunkDurationS), ladder)
			if err != nil {
				return err
			}
			params, ok := sol.Parameters()
			if !ok {
				return fmt.Errorf("degenerate ladder: nothing to sweep")
			}

			objectives, err := algorithms.SweepObjectives(params, ladder, cfg.ChunkDurationS, rangeS, objectiveSamples)
			if err != nil {
				return err
			}
			decisions, err := algorithms.SweepDecisions(params, ladder, cfg.ChunkDurationS, rangeS, decisionSamples)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create trace: %w", err)
			}
			tracer := qlog.NewStreamTracer(f, qlog.PerspectiveServer, qlog.StreamID(staticChannelName))
			tracer.ParametersCalculated(staticChannelName, 0, cfg.Settings().Bounds(cfg.ChunkDurationS), sol)
			tracer.RecordObjectiveSweep(objectives)
			tracer.RecordDecisionSweep(decisions)
			if err := tracer.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d objective and %d decision samples to %s\n",
				len(objectives), len(decisions), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "qlog output path")
	cmd.Flags().Float64Var(&rangeS, "range", 25, "largest buffer level to sample, seconds")
	cmd.Flags().IntVar(&objectiveSamples, "objective-samples", 3, "samples per objective line (objectives are linear)")
	cmd.Flags().IntVar(&decisionSamples, "decision-samples", 1000, "samples of the decision step function")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
