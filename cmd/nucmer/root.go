package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aria-lang/nucmer-go/internal/config"
	"github.com/aria-lang/nucmer-go/pkg/nucmer"
)

var (
	v      = config.NewViper()
	logger = logrus.New()

	// cfg is loaded before any subcommand runs.
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nucmer",
	Short: "Whole genome alignment of nucleotide sequences",
	Long: `Finds maximal unique matches between each query and the references,
clusters them into collinear runs and extends the clusters into gapped
alignments`,
	Version:           nucmer.Version(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (toml, yaml or json)")
	rootCmd.PersistentFlags().String("log-level", v.GetString("log-level"), "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().IntP("workers", "t", v.GetInt("workers"), "Queries aligned at once, 0 for one per CPU")

	v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := config.ReadFile(v, path); err != nil {
			return err
		}
	}

	c, err := config.New(v)
	if err != nil {
		return err
	}

	level, err := c.Level()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	cfg = c
	return nil
}

// options returns the aligner options for the loaded config.
func options() (nucmer.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nucmer.Options{}, err
	}
	opts.Logger = logger
	return opts, nil
}
