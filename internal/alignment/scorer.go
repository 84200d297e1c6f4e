package alignment

// Scorer scores gapped alignments. GapOpenCost and GapExtensionCost are
// negative by convention.
type Scorer struct {
	Matrix           SimilarityMatrix
	GapOpenCost      int
	GapExtensionCost int

	// IsAlign selects the affine gap model. When false every gap position
	// costs GapOpenCost.
	IsAlign bool
}

// CalculateScore returns the score of two gapped sequences of equal length.
// Only the common prefix is scored when the lengths differ.
func (s *Scorer) CalculateScore(ref, query []byte) int {
	n := len(ref)
	if len(query) < n {
		n = len(query)
	}

	score := 0
	for i := 0; i < n; {
		r, q := ref[i], query[i]
		if r != Gap && q != Gap {
			score += s.Matrix.Score(SymbolIndex(r), SymbolIndex(q))
			i++
			continue
		}

		if !s.IsAlign {
			score += s.GapOpenCost
			i++
			continue
		}

		gapped := ref
		if r != Gap {
			gapped = query
		}
		run := 0
		for i+run < n && gapped[i+run] == Gap {
			run++
		}
		score += s.GapOpenCost + run*s.GapExtensionCost
		i += run
	}

	return score
}
