package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uccmisl/godash-bola/channel"
	"github.com/uccmisl/godash-bola/config"
	"github.com/uccmisl/godash-bola/media"
)

func newLadderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Build default ladders from past encodings",
	}
	cmd.AddCommand(newLadderAverageCmd())
	return cmd
}

func newLadderAverageCmd() *cobra.Command {
	var sizesPath, ssimsPath string
	cmd := &cobra.Command{
		Use:   "average",
		Short: "Average per-channel size and SSIM ladders into a config ladder block",
		Long: `Reads two YAML files mapping channel name to a list of per-format values
(sizes in bytes, raw SSIM indices). Each channel's list is sorted ascending and
the lists are averaged index-wise. The result is printed as a "ladder:" block.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sizes, err := readLadders(sizesPath)
			if err != nil {
				return err
			}
			ssims, err := readLadders(ssimsPath)
			if err != nil {
				return err
			}
			rungs, err := averageRungs(sizes, ssims)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(struct {
				Ladder []config.LadderRung `yaml:"ladder"`
			}{rungs}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&sizesPath, "sizes", "", "YAML file of per-channel chunk sizes")
	cmd.Flags().StringVar(&ssimsPath, "ssims", "", "YAML file of per-channel SSIM indices")
	_ = cmd.MarkFlagRequired("sizes")
	_ = cmd.MarkFlagRequired("ssims")
	return cmd
}

func readLadders(path string) (map[string][]float64, error) {
	// #nosec G304 -- paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var ladders map[string][]float64
	if err := yaml.Unmarshal(data, &ladders); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ladders, nil
}

func averageRungs(sizes, ssims map[string][]float64) ([]config.LadderRung, error) {
	avgSizes, err := channel.AverageLadders(sizes)
	if err != nil {
		return nil, fmt.Errorf("sizes: %w", err)
	}
	avgSSIMs, err := channel.AverageLadders(ssims)
	if err != nil {
		return nil, fmt.Errorf("ssims: %w", err)
	}
	if len(avgSizes) != len(avgSSIMs) {
		return nil, fmt.Errorf("%d sizes but %d ssims per channel", len(avgSizes), len(avgSSIMs))
	}

	rungs := make([]config.LadderRung, len(avgSizes))
	for i := range rungs {
		rungs[i] = config.LadderRung{
			// Formats differ between channels; use placeholders.
			Format:    media.VideoFormat{Width: uint16(i + 1), Height: uint16(i + 1), CRF: 11},
			SizeBytes: uint64(math.Round(avgSizes[i])),
			SSIM:      avgSSIMs[i],
		}
	}
	return rungs, nil
}
