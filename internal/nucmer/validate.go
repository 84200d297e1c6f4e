package nucmer

import (
	"fmt"

	"github.com/aria-lang/nucmer-go/internal/alignment"
	"github.com/aria-lang/nucmer-go/internal/cluster"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

// Validate checks opts and the inputs of a run. It never builds an index.
func Validate(opts Options, refs, queries []*sequence.Sequence) error {
	if refs == nil {
		return &ValidationError{Field: "references", Reason: "list is nil"}
	}
	if queries == nil {
		return &ValidationError{Field: "queries", Reason: "list is nil"}
	}
	if len(refs) == 0 {
		return &ValidationError{Field: "references", Reason: "list is empty"}
	}

	if err := validateOptions(opts); err != nil {
		return err
	}

	expected := sequence.Unknown
	check := func(list string, seqs []*sequence.Sequence) error {
		for i, s := range seqs {
			if s == nil {
				return &ValidationError{Field: list, Reason: fmt.Sprintf("sequence %d is nil", i)}
			}
			if !s.SeqType.IsNucleotide() {
				return &AlphabetError{ID: s.ID, Found: s.SeqType, Expected: sequence.Unknown}
			}
			if expected == sequence.Unknown {
				expected = s.SeqType
			} else if s.SeqType != expected {
				return &AlphabetError{ID: s.ID, Found: s.SeqType, Expected: expected}
			}
			if s.Len() < opts.LengthOfMUM {
				return &SequenceTooShortError{ID: s.ID, Length: s.Len(), Minimum: opts.LengthOfMUM}
			}
		}
		return nil
	}

	if err := check("references", refs); err != nil {
		return err
	}
	return check("queries", queries)
}

func validateOptions(opts Options) error {
	switch opts.SimilarityMatrix.(type) {
	case alignment.DiagonalMatrix, *alignment.DiagonalMatrix:
	default:
		return &ValidationError{
			Field:  "similarity matrix",
			Reason: fmt.Sprintf("expected a diagonal matrix, got %T", opts.SimilarityMatrix),
		}
	}

	if opts.LengthOfMUM < 1 {
		return &ValidationError{Field: "length of MUM", Reason: fmt.Sprintf("must be at least 1, got %d", opts.LengthOfMUM)}
	}
	if opts.BreakLength < 0 {
		return &ValidationError{Field: "break length", Reason: "must not be negative"}
	}
	if opts.MaximumAlignmentLength < 1 {
		return &ValidationError{Field: "maximum alignment length", Reason: "must be positive"}
	}

	if _, err := newBuilder(opts); err != nil {
		return &ValidationError{Field: "cluster parameters", Reason: err.Error()}
	}
	return nil
}

func newBuilder(opts Options) (*cluster.Builder, error) {
	return cluster.NewBuilder(opts.FixedSeparation, opts.MaximumSeparation,
		opts.MinimumScore, opts.SeparationFactor)
}
