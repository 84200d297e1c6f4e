package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/aria-lang/nucmer-go/internal/output"
	"github.com/aria-lang/nucmer-go/pkg/nucmer"
)

// alignCmd aligns a query file against a reference file
var alignCmd = &cobra.Command{
	Use:   "align <reference.fa> [query.fa]",
	Short: "Align queries against references",
	Long: `Aligns every sequence of the query file against all sequences of the
reference file. With a single file, its first sequence is the reference and
the rest are queries.

Input may be FASTA or FASTQ, plain or gzip compressed. "-" reads stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)

	flags := alignCmd.Flags()
	flags.IntP("min-length", "l", v.GetInt("seed.min-length"), "Minimum length of a seed match")
	flags.BoolP("reverse", "r", v.GetBool("seed.reverse"), "Also align the reverse complement of each query")
	flags.IntP("break-length", "b", v.GetInt("extend.break-length"), "Distance an extension may run past its best score")
	flags.Int("max-length", v.GetInt("extend.max-length"), "Longest single extension")
	flags.String("scoring", v.GetString("extend.scoring"), "Extension scoring preset: nucmer, dna or blast")
	flags.StringP("format", "f", v.GetString("format"), "Output format: "+strings.Join(output.Formats(), ", "))
	flags.StringP("output", "o", "", "Output file, stdout if empty")
	flags.BoolP("progress", "p", false, "Show a progress bar on stderr")
	flags.Bool("dump-config", false, "Print the effective config as TOML and exit")

	v.BindPFlag("seed.min-length", flags.Lookup("min-length"))
	v.BindPFlag("seed.reverse", flags.Lookup("reverse"))
	v.BindPFlag("extend.break-length", flags.Lookup("break-length"))
	v.BindPFlag("extend.max-length", flags.Lookup("max-length"))
	v.BindPFlag("extend.scoring", flags.Lookup("scoring"))
	v.BindPFlag("format", flags.Lookup("format"))
}

func runAlign(cmd *cobra.Command, args []string) error {
	if dump, _ := cmd.Flags().GetBool("dump-config"); dump {
		b, err := cfg.TOML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}

	opts, err := options()
	if err != nil {
		return err
	}

	refPath, queryPath := args[0], args[0]
	refs, err := readSequences(refPath, "references")
	if err != nil {
		return err
	}

	var queries []*nucmer.Sequence
	if len(args) == 2 {
		queryPath = args[1]
		if queries, err = readSequences(queryPath, "queries"); err != nil {
			return err
		}
	} else {
		if len(refs) < 2 {
			return fmt.Errorf("%s: need a reference and at least one query, got %d sequences", refPath, len(refs))
		}
		refs, queries = refs[:1], refs[1:]
	}

	var pbs *mpb.Progress
	var bar *mpb.Bar
	if show, _ := cmd.Flags().GetBool("progress"); show {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(int64(len(queries)),
			mpb.PrependDecorators(
				decor.Name("aligned queries: ", decor.WC{W: len("aligned queries: "), C: decor.DindentRight}),
				decor.Name("", decor.WCSyncSpaceR),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.EwmaETA(decor.ET_STYLE_GO, 16),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
		opts.OnQueryDone = func(int, *nucmer.PairwiseAlignment) {
			bar.Increment()
		}
	}

	results, err := nucmer.Align(cmd.Context(), refs, queries, opts)
	if pbs != nil {
		if err != nil {
			bar.Abort(false)
		}
		pbs.Wait()
	}
	if err != nil {
		return err
	}

	if err := writeResults(cmd, &output.Run{
		ReferencePath: refPath,
		QueryPath:     queryPath,
		Results:       results,
	}); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), nucmer.AlignmentStats(refs, results))
	return nil
}

func readSequences(path, kind string) ([]*nucmer.Sequence, error) {
	seqs, err := nucmer.ReadFASTA(path)
	if err != nil {
		return nil, err
	}

	s, err := nucmer.SequenceSetStats(seqs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.WithFields(logrus.Fields{
		"file":        path,
		"count":       s.Count,
		"total_bases": s.TotalBases,
		"n50":         s.N50,
	}).Infof("read %s", kind)

	return seqs, nil
}

// writeResults writes run to stdout or to --output. Without an explicit
// --format a known output file extension picks the format.
func writeResults(cmd *cobra.Command, run *output.Run) (err error) {
	format := cfg.Format
	var w io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if name, ok := output.FormatForPath(path); ok && !cmd.Flags().Changed("format") {
			format = name
		}

		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("creating output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := output.Write(format, bw, run); err != nil {
		return err
	}
	return bw.Flush()
}
