package mum

import (
	"index/suffixarray"
	"sort"
)

// DefaultMaxOccurrences caps how many reference occurrences of a seed are
// inspected before the query position is treated as repetitive and skipped.
const DefaultMaxOccurrences = 1024

// Index is a suffix array over a reference sequence.
type Index struct {
	ref            []byte
	sa             *suffixarray.Index
	MaxOccurrences int
}

// Build indexes reference. The slice must not be modified afterwards.
func Build(reference []byte) *Index {
	return &Index{
		ref:            reference,
		sa:             suffixarray.New(reference),
		MaxOccurrences: DefaultMaxOccurrences,
	}
}

// Len returns the length of the indexed reference.
func (idx *Index) Len() int {
	return len(idx.ref)
}

// FindMatches returns the maximal matches of at least minLength symbols
// between the reference and query that occur exactly once in the reference.
// The returned matches carry dir and are ordered by query position.
func (idx *Index) FindMatches(query []byte, minLength int, dir Direction) []Match {
	if minLength < 1 || len(query) < minLength {
		return nil
	}

	limit := idx.MaxOccurrences
	if limit <= 0 {
		limit = DefaultMaxOccurrences
	}

	var matches []Match
	for q := 0; q+minLength <= len(query); q++ {
		offsets := idx.sa.Lookup(query[q:q+minLength], limit+1)
		if len(offsets) == 0 || len(offsets) > limit {
			continue
		}

		// The longest extension must be achieved by a single occurrence,
		// otherwise the matched string is repeated in the reference.
		best, bestLen, ties := -1, 0, 0
		for _, r := range offsets {
			l := idx.extend(query, q, r, minLength)
			switch {
			case l > bestLen:
				best, bestLen, ties = r, l, 1
			case l == bestLen:
				ties++
			}
		}
		if ties != 1 {
			continue
		}

		// Not left-maximal: the match is a suffix of one found at q-1.
		if q > 0 && best > 0 && idx.ref[best-1] == query[q-1] {
			continue
		}

		matches = append(matches, Match{
			RefStart:   best,
			QueryStart: q,
			Length:     bestLen,
			Direction:  dir,
		})
	}

	return matches
}

// extend returns the length of the exact match at (r, q), known to be at
// least seed long.
func (idx *Index) extend(query []byte, q, r, seed int) int {
	l := seed
	for r+l < len(idx.ref) && q+l < len(query) && idx.ref[r+l] == query[q+l] {
		l++
	}
	return l
}

// SortByReference orders matches by reference then query position.
func SortByReference(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].RefStart != matches[j].RefStart {
			return matches[i].RefStart < matches[j].RefStart
		}
		return matches[i].QueryStart < matches[j].QueryStart
	})
}
