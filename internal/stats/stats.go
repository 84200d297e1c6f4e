// Package stats provides statistical summaries for sequence sets and
// alignment runs.
package stats

import (
	"fmt"
	"sort"

	"github.com/aria-lang/nucmer-go/internal/mum"
	"github.com/aria-lang/nucmer-go/internal/nucmer"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

// SequenceSetStats represents aggregated statistics for multiple sequences.
type SequenceSetStats struct {
	Count          int
	TotalBases     int
	MinLength      int
	MaxLength      int
	MeanLength     float64
	MedianLength   int
	MeanGCContent  float64
	N50            int
	TotalAmbiguous int
}

// FromSequences calculates statistics for a collection of sequences.
func FromSequences(sequences []*sequence.Sequence) (*SequenceSetStats, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("sequence list cannot be empty")
	}

	count := len(sequences)
	lengths := make([]int, count)
	totalBases := 0

	for i, seq := range sequences {
		lengths[i] = seq.Len()
		totalBases += seq.Len()
	}

	sorted := make([]int, count)
	copy(sorted, lengths)
	sort.Ints(sorted)

	mid := count / 2
	var medianLen int
	if count%2 == 0 {
		medianLen = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		medianLen = sorted[mid]
	}

	gcSum := 0.0
	ambiguous := 0
	for _, seq := range sequences {
		gcSum += seq.GCContent()
		ambiguous += countAmbiguous(seq)
	}

	return &SequenceSetStats{
		Count:          count,
		TotalBases:     totalBases,
		MinLength:      sorted[0],
		MaxLength:      sorted[count-1],
		MeanLength:     float64(totalBases) / float64(count),
		MedianLength:   medianLen,
		MeanGCContent:  gcSum / float64(count),
		N50:            n50(sorted, totalBases),
		TotalAmbiguous: ambiguous,
	}, nil
}

// n50 is the length at which the longest sequences first hold half of all
// bases. sorted is ascending.
func n50(sorted []int, total int) int {
	half := total / 2
	running := 0
	for i := len(sorted) - 1; i >= 0; i-- {
		running += sorted[i]
		if running >= half {
			return sorted[i]
		}
	}
	return sorted[len(sorted)-1]
}

func countAmbiguous(seq *sequence.Sequence) int {
	n := 0
	for i := 0; i < len(seq.Bases); i++ {
		switch seq.Bases[i] {
		case 'A', 'C', 'G', 'T', 'U':
		default:
			n++
		}
	}
	return n
}

func (s *SequenceSetStats) String() string {
	return fmt.Sprintf(`SequenceSetStats {
  count: %d
  total_bases: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  mean GC: %.1f%%
  N50: %d
  ambiguous bases: %d
}`, s.Count, s.TotalBases, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.MeanGCContent*100, s.N50, s.TotalAmbiguous)
}

// AlignmentStats summarizes the results of an alignment run.
type AlignmentStats struct {
	Queries        int
	AlignedQueries int
	Segments       int
	ForwardCount   int
	ReverseCount   int

	// AlignedBases counts alignment columns over all segments.
	AlignedBases int
	// MeanIdentity is the identity over all alignment columns.
	MeanIdentity float64

	// Coverage is the fraction of bases covered by at least one segment.
	ReferenceCoverage float64
	QueryCoverage     float64
}

// FromAlignments calculates statistics for the results of a run against
// refs.
func FromAlignments(refs []*sequence.Sequence, results []*nucmer.PairwiseAlignment) *AlignmentStats {
	s := &AlignmentStats{Queries: len(results)}

	refIntervals := make(map[*sequence.Sequence][]interval)
	matched := 0
	queryBases, queryCovered := 0, 0

	for _, res := range results {
		queryBases += res.Query.Len()
		if len(res.Segments) > 0 {
			s.AlignedQueries++
		}

		var covered []interval
		for _, seg := range res.Segments {
			s.Segments++
			if seg.Direction == mum.Reverse {
				s.ReverseCount++
			} else {
				s.ForwardCount++
			}
			s.AlignedBases += seg.Length()
			matched += seg.MatchCount()

			ref := seg.Reference()
			refIntervals[ref] = append(refIntervals[ref], interval{seg.FirstStart, seg.FirstEnd})
			covered = append(covered, queryInterval(seg, res.Query.Len()))
		}
		queryCovered += coveredLength(covered)
	}

	if s.AlignedBases > 0 {
		s.MeanIdentity = float64(matched) / float64(s.AlignedBases)
	}
	if queryBases > 0 {
		s.QueryCoverage = float64(queryCovered) / float64(queryBases)
	}

	refBases, refCovered := 0, 0
	for _, ref := range refs {
		refBases += ref.Len()
		refCovered += coveredLength(refIntervals[ref])
	}
	if refBases > 0 {
		s.ReferenceCoverage = float64(refCovered) / float64(refBases)
	}

	return s
}

func (s *AlignmentStats) String() string {
	return fmt.Sprintf(`AlignmentStats {
  queries aligned: %d / %d
  segments: %d (forward %d, reverse %d)
  aligned bases: %d
  mean identity: %.2f%%
  reference coverage: %.2f%%
  query coverage: %.2f%%
}`, s.AlignedQueries, s.Queries, s.Segments, s.ForwardCount, s.ReverseCount,
		s.AlignedBases, s.MeanIdentity*100, s.ReferenceCoverage*100, s.QueryCoverage*100)
}

// interval is an inclusive range of positions.
type interval struct {
	start, end int
}

// queryInterval returns the range of seg on the forward query.
func queryInterval(seg *nucmer.Segment, queryLen int) interval {
	if seg.Direction == mum.Reverse {
		return interval{queryLen - 1 - seg.SecondEnd, queryLen - 1 - seg.SecondStart}
	}
	return interval{seg.SecondStart, seg.SecondEnd}
}

// coveredLength returns the number of positions in the union of intervals.
func coveredLength(intervals []interval) int {
	if len(intervals) == 0 {
		return 0
	}
	sort.Slice(intervals, func(i, j int) bool { return intervals[i].start < intervals[j].start })

	total := 0
	cur := intervals[0]
	for _, iv := range intervals[1:] {
		if iv.start <= cur.end+1 {
			if iv.end > cur.end {
				cur.end = iv.end
			}
			continue
		}
		total += cur.end - cur.start + 1
		cur = iv
	}
	return total + cur.end - cur.start + 1
}
