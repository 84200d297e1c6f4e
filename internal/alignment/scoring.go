// Package alignment provides the base-level alignment primitives used by the
// whole-genome aligner.
//
// This package implements the similarity matrices and gap models used to
// score gapped alignments, the banded affine extender that fills the space
// between seed matches, and consensus building over aligned pairs.
package alignment

import "fmt"

// Gap is the symbol used for a gap in aligned text.
const Gap = '-'

// AlignDirection represents the traceback direction in the alignment matrix.
type AlignDirection byte

const (
	// Stop represents the origin of the alignment
	Stop AlignDirection = iota
	// Diagonal represents a match or mismatch
	Diagonal
	// Up represents a reference symbol against a gap
	Up
	// Left represents a gap against a query symbol
	Left
)

// SimilarityMatrix scores two symbols by index. A symbol's index is its upper
// case value minus 'A', see SymbolIndex.
type SimilarityMatrix interface {
	Score(i, j int) int
}

// DiagonalMatrix scores equal symbols with Match and all others with
// Mismatch.
type DiagonalMatrix struct {
	Match    int
	Mismatch int
}

// Score implements SimilarityMatrix.
func (m DiagonalMatrix) Score(i, j int) int {
	if i == j {
		return m.Match
	}
	return m.Mismatch
}

func (m DiagonalMatrix) String() string {
	return fmt.Sprintf("DiagonalMatrix { match: %d, mismatch: %d }", m.Match, m.Mismatch)
}

// IdentityMatrix returns the default DNA similarity matrix: 1 on the
// diagonal, 0 elsewhere.
func IdentityMatrix() DiagonalMatrix {
	return DiagonalMatrix{Match: 1, Mismatch: 0}
}

// SymbolIndex returns upper(b) - 'A'.
func SymbolIndex(b byte) int {
	return int(upper(b)) - 'A'
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// ScoringMatrix holds the scoring parameters of the extender. A gap run of
// length k costs GapOpenPenalty + k*GapExtendPenalty.
type ScoringMatrix struct {
	MatchScore       int
	MismatchPenalty  int
	GapOpenPenalty   int
	GapExtendPenalty int
}

// NucmerDefault returns the extension scores used by MUMmer's nucmer.
func NucmerDefault() *ScoringMatrix {
	return &ScoringMatrix{
		MatchScore:       3,
		MismatchPenalty:  -7,
		GapOpenPenalty:   -7,
		GapExtendPenalty: -1,
	}
}

// DefaultDNA creates a default DNA scoring matrix.
func DefaultDNA() *ScoringMatrix {
	return &ScoringMatrix{
		MatchScore:       2,
		MismatchPenalty:  -1,
		GapOpenPenalty:   -2,
		GapExtendPenalty: -1,
	}
}

// BLASTLike creates a BLAST-like scoring matrix.
func BLASTLike() *ScoringMatrix {
	return &ScoringMatrix{
		MatchScore:       1,
		MismatchPenalty:  -3,
		GapOpenPenalty:   -5,
		GapExtendPenalty: -2,
	}
}

// Preset returns a named scoring matrix: "nucmer", "dna" or "blast".
func Preset(name string) (*ScoringMatrix, error) {
	switch name {
	case "", "nucmer":
		return NucmerDefault(), nil
	case "dna":
		return DefaultDNA(), nil
	case "blast":
		return BLASTLike(), nil
	default:
		return nil, fmt.Errorf("unknown scoring preset %q", name)
	}
}

// Score returns the score for comparing two bases. 'N' never matches.
func (s *ScoringMatrix) Score(base1, base2 byte) int {
	base1, base2 = upper(base1), upper(base2)
	if base1 == base2 && base1 != 'N' {
		return s.MatchScore
	}
	return s.MismatchPenalty
}

// GapCost returns the cost of a gap run of the given length.
func (s *ScoringMatrix) GapCost(run int) int {
	if run <= 0 {
		return 0
	}
	return s.GapOpenPenalty + run*s.GapExtendPenalty
}

// String returns a string representation of the scoring matrix.
func (s *ScoringMatrix) String() string {
	return fmt.Sprintf("ScoringMatrix { match: %d, mismatch: %d, gap_open: %d, gap_extend: %d }",
		s.MatchScore, s.MismatchPenalty, s.GapOpenPenalty, s.GapExtendPenalty)
}
