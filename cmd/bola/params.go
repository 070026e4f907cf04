package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uccmisl/godash-bola/algorithms"
	"github.com/uccmisl/godash-bola/config"
)

const staticChannelName = "static"

func newParamsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "params",
		Short: "Solve V and gp for the configured ladder",
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
			bounds := cfg.Settings().Bounds(cfg.ChunkDurationS)
			sol, err := algorithms.CalculateParameters(bounds, ladder)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chunk duration: %gs\n", cfg.ChunkDurationS)
			fmt.Fprintf(out, "min buffer: %.4f chunks\n", bounds.MinChunks)
			fmt.Fprintf(out, "max buffer: %.4f chunks\n", bounds.MaxChunks)
			p, ok := sol.Parameters()
			if !ok {
				fmt.Fprintln(out, "degenerate ladder: the two smallest formats have equal size")
				return nil
			}
			fmt.Fprintf(out, "V = %.6f, gp = %.6f\n", p.V, p.Gp)
			return nil
		},
	}
}

// configuredLadder is the config ladder with utilities, sorted ascending.
func configuredLadder(cfg config.Config) (algorithms.Ladder, error) {
	ch, err := cfg.StaticChannel(staticChannelName)
	if err != nil {
		return nil, err
	}
	ladder, err := algorithms.BuildLadder(ch, ch.Formats(), 0)
	if err != nil {
		return nil, err
	}
	algorithms.SortLadder(ladder)
	return ladder, nil
}
