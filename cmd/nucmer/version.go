package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/nucmer-go/pkg/nucmer"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), nucmer.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
