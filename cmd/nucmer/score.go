package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/nucmer-go/pkg/nucmer"
)

var scoreCmd = &cobra.Command{
	Use:   "score <first> <second>",
	Short: "Score a pair of gapped sequences",
	Long: `Scores two aligned sequences of equal length, with '-' for gaps, the
way finished alignments are scored`,
	Example: "  nucmer score ACGT-ACGT ACGTTACGT --gap-open -10",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}

		score, err := nucmer.Score(args[0], args[1], opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), score)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	flags := scoreCmd.Flags()
	flags.Int("match", v.GetInt("score.match"), "Score of a matching column")
	flags.Int("mismatch", v.GetInt("score.mismatch"), "Score of a mismatching column")
	flags.Int("gap-open", v.GetInt("score.gap-open"), "Cost of opening a gap")
	flags.Int("gap-extend", v.GetInt("score.gap-extend"), "Cost of each gap position")
	flags.Bool("affine", v.GetBool("score.affine"), "Affine gap scoring, linear if false")

	v.BindPFlag("score.match", flags.Lookup("match"))
	v.BindPFlag("score.mismatch", flags.Lookup("mismatch"))
	v.BindPFlag("score.gap-open", flags.Lookup("gap-open"))
	v.BindPFlag("score.gap-extend", flags.Lookup("gap-extend"))
	v.BindPFlag("score.affine", flags.Lookup("affine"))
}
