package nucmer

import (
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/aria-lang/nucmer-go/internal/alignment"
	"github.com/aria-lang/nucmer-go/internal/cluster"
)

// Aligner defaults.
const (
	DefaultLengthOfMUM            = 20
	DefaultGapOpenCost            = -13
	DefaultGapExtensionCost       = -8
	DefaultBreakLength            = alignment.DefaultBreakLength
	DefaultMaximumAlignmentLength = 10000
	DefaultValidScore             = 3
	DefaultSubstitutionScore      = -1
)

// Options configures an Aligner.
type Options struct {
	// LengthOfMUM is the minimum length of a seed match.
	LengthOfMUM int

	// GapOpenCost and GapExtensionCost score the final alignments.
	GapOpenCost      int
	GapExtensionCost int
	SimilarityMatrix alignment.SimilarityMatrix
	// IsAlign selects affine gap scoring.
	IsAlign bool

	// Cluster builder tolerances; cluster.UseDefault selects the default.
	FixedSeparation   int
	MaximumSeparation int
	MinimumScore      int
	SeparationFactor  float64

	BreakLength            int
	MaximumAlignmentLength int
	ValidScore             int
	SubstitutionScore      int

	// ExtensionScoring drives the extender between seeds.
	ExtensionScoring *alignment.ScoringMatrix
	BandWidth        int

	// Consensus resolves aligned columns; nil selects IUPAC codes.
	Consensus alignment.ConsensusResolver

	// IncludeReverse also searches the reverse complement of every query.
	IncludeReverse bool

	// Workers bounds how many queries are aligned at once.
	Workers int

	Logger logrus.FieldLogger

	// OnQueryDone is called after each query finishes. It may be called
	// from several goroutines at once.
	OnQueryDone func(index int, result *PairwiseAlignment)
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		LengthOfMUM:            DefaultLengthOfMUM,
		GapOpenCost:            DefaultGapOpenCost,
		GapExtensionCost:       DefaultGapExtensionCost,
		SimilarityMatrix:       alignment.IdentityMatrix(),
		IsAlign:                true,
		FixedSeparation:        cluster.DefaultFixedSeparation,
		MaximumSeparation:      cluster.DefaultMaximumSeparation,
		MinimumScore:           cluster.DefaultMinimumScore,
		SeparationFactor:       cluster.DefaultSeparationFactor,
		BreakLength:            DefaultBreakLength,
		MaximumAlignmentLength: DefaultMaximumAlignmentLength,
		ValidScore:             DefaultValidScore,
		SubstitutionScore:      DefaultSubstitutionScore,
		ExtensionScoring:       alignment.NucmerDefault(),
		BandWidth:              alignment.DefaultBandWidth,
		Workers:                runtime.GOMAXPROCS(0),
		Logger:                 logrus.StandardLogger(),
	}
}
