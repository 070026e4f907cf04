package main

import (
	"github.com/spf13/cobra"

	"github.com/uccmisl/godash-bola/config"
	"github.com/uccmisl/godash-bola/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "bola",
		Short:        "Inspect BOLA-BASIC parameters and decisions",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML configuration file (defaults built in)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override")

	cmd.AddCommand(
		newParamsCmd(opts),
		newSelectCmd(opts),
		newSweepCmd(opts),
		newLadderCmd(),
	)
	return cmd
}

// load reads the configuration and configures logging from it.
func (o *rootOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logging.Configure(logging.Config{Level: level, Output: cmd.ErrOrStderr(), Service: "bola"})
	return cfg, nil
}
