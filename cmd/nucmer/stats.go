package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/nucmer-go/pkg/nucmer"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file.fa>...",
	Short: "Calculate sequence statistics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			seqs, err := nucmer.ReadFASTA(path)
			if err != nil {
				return err
			}
			s, err := nucmer.SequenceSetStats(seqs)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", path, s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
