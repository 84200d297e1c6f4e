// Package nucmer provides a high-level API for whole genome alignment.
//
// Example usage:
//
//	refs, err := nucmer.ReadFASTA("reference.fa")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	queries, err := nucmer.ReadFASTA("query.fa.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := nucmer.Align(ctx, refs, queries, nucmer.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, seg := range results[0].Segments {
//	    fmt.Println(seg.Format())
//	}
package nucmer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"

	"github.com/aria-lang/nucmer-go/internal/alignment"
	aligner "github.com/aria-lang/nucmer-go/internal/nucmer"
	"github.com/aria-lang/nucmer-go/internal/sequence"
	"github.com/aria-lang/nucmer-go/internal/stats"
)

// Re-export types for convenience
type (
	Sequence          = sequence.Sequence
	SequenceType      = sequence.SequenceType
	Alignment         = alignment.Alignment
	ScoringMatrix     = alignment.ScoringMatrix
	Options           = aligner.Options
	Aligner           = aligner.Aligner
	PairwiseAlignment = aligner.PairwiseAlignment
	Segment           = aligner.Segment
	DeltaAlignment    = aligner.DeltaAlignment
	InputError        = aligner.InputError
)

// Constants
const (
	DNA     = sequence.DNA
	RNA     = sequence.RNA
	Protein = sequence.Protein
	Unknown = sequence.Unknown
)

// NewSequence creates a new DNA sequence.
func NewSequence(bases string) (*Sequence, error) {
	return sequence.New(bases)
}

// NewSequenceWithID creates a new DNA sequence with an identifier.
func NewSequenceWithID(bases, id string) (*Sequence, error) {
	return sequence.WithID(bases, id)
}

// DefaultOptions returns the default aligner configuration.
func DefaultOptions() Options {
	return aligner.DefaultOptions()
}

// New creates an aligner.
func New(opts Options) *Aligner {
	return aligner.New(opts)
}

// Align aligns every query against refs with opts.
func Align(ctx context.Context, refs, queries []*Sequence, opts Options) ([]*PairwiseAlignment, error) {
	return aligner.New(opts).Align(ctx, refs, queries)
}

// AlignPair aligns query against ref and returns its segments.
func AlignPair(ctx context.Context, ref, query *Sequence, opts Options) ([]*Segment, error) {
	results, err := Align(ctx, []*Sequence{ref}, []*Sequence{query}, opts)
	if err != nil {
		return nil, err
	}
	return results[0].Segments, nil
}

// Score scores a pair of gapped sequences the way aligned segments are
// scored.
func Score(first, second string, opts Options) (int, error) {
	if len(first) != len(second) {
		return 0, fmt.Errorf("aligned sequences must have equal length, got %d and %d", len(first), len(second))
	}
	scorer := &alignment.Scorer{
		Matrix:           opts.SimilarityMatrix,
		GapOpenCost:      opts.GapOpenCost,
		GapExtensionCost: opts.GapExtensionCost,
		IsAlign:          opts.IsAlign,
	}
	return scorer.CalculateScore([]byte(strings.ToUpper(first)), []byte(strings.ToUpper(second))), nil
}

// SequenceSetStats calculates statistics for multiple sequences.
func SequenceSetStats(sequences []*Sequence) (*stats.SequenceSetStats, error) {
	return stats.FromSequences(sequences)
}

// AlignmentStats summarizes the results of a run against refs.
func AlignmentStats(refs []*Sequence, results []*PairwiseAlignment) *stats.AlignmentStats {
	return stats.FromAlignments(refs, results)
}

// ReadFASTA reads sequences from a FASTA or FASTQ file, which may be gzip
// compressed. "-" reads standard input.
func ReadFASTA(filename string) ([]*Sequence, error) {
	reader, err := fastx.NewReader(seq.Unlimit, filename, "")
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer reader.Close()

	return readRecords(reader, filename)
}

// ParseFASTA parses FASTA or FASTQ records from r, which may be gzip
// compressed. Empty input yields no sequences.
func ParseFASTA(r io.Reader) ([]*Sequence, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err == io.EOF {
		return []*Sequence{}, nil
	}

	reader, err := fastx.NewReaderFromIO(seq.Unlimit, br, "")
	if err != nil {
		return nil, fmt.Errorf("opening reader: %w", err)
	}
	defer reader.Close()

	return readRecords(reader, "input")
}

func readRecords(reader *fastx.Reader, source string) ([]*Sequence, error) {
	sequences := make([]*Sequence, 0)
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}

		id := string(record.ID)
		desc := strings.TrimSpace(strings.TrimPrefix(string(record.Name), id))
		s, err := ParseSequence(string(record.Seq.Seq), id, desc)
		if err != nil {
			return nil, fmt.Errorf("%s: record %q: %w", source, id, err)
		}
		sequences = append(sequences, s)
	}

	return sequences, nil
}

// ParseSequence builds a sequence from a file record. The alphabet is the first
// of DNA, RNA and protein that accepts every symbol, so that protein input
// reaches the aligner and is rejected there with an AlphabetError.
func ParseSequence(bases, id, desc string) (*Sequence, error) {
	var firstErr error
	for _, t := range []SequenceType{DNA, RNA, Protein} {
		s, err := sequence.WithMetadata(bases, id, desc, t)
		if err == nil {
			return s, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// WriteFASTA writes sequences to a FASTA file.
func WriteFASTA(filename string, sequences []*Sequence) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	for _, s := range sequences {
		_, err := file.WriteString(s.ToFASTA())
		if err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}

	return nil
}

// Version returns the nucmer-go version.
func Version() string {
	return "1.0.0"
}

// Info returns information about nucmer-go.
func Info() string {
	return fmt.Sprintf(`nucmer-go v%s - Whole Genome Alignment

Aligns nucleotide queries against a set of references:
  - maximal unique match seeds from a suffix array index
  - collinear clustering of seeds
  - banded affine extension between seeds and clusters
  - delta encoded alignments with IUPAC consensus
  - delta, coords and JSON output
`, Version())
}
