package nucmer

import (
	"github.com/aria-lang/nucmer-go/internal/alignment"
	"github.com/aria-lang/nucmer-go/internal/cluster"
	"github.com/aria-lang/nucmer-go/internal/mum"
)

// ChainExtender turns the clusters of a synteny into delta alignments by
// extending between consecutive matches and clusters.
type ChainExtender struct {
	BreakLength            int
	MaximumAlignmentLength int
	ValidScore             int
	SubstitutionScore      int

	extender *alignment.Extender
}

// NewChainExtender creates a ChainExtender from opts.
func NewChainExtender(opts Options) *ChainExtender {
	ext := alignment.NewExtender(opts.ExtensionScoring, opts.BreakLength)
	if opts.BandWidth > 0 {
		ext.BandWidth = opts.BandWidth
	}

	return &ChainExtender{
		BreakLength:            opts.BreakLength,
		MaximumAlignmentLength: opts.MaximumAlignmentLength,
		ValidScore:             opts.ValidScore,
		SubstitutionScore:      opts.SubstitutionScore,
		extender:               ext,
	}
}

// ExtendClusters extends every cluster of s and returns the resulting
// alignments. Clusters are sorted and marked fused as a side effect.
func (x *ChainExtender) ExtendClusters(s *Synteny) []*DeltaAlignment {
	cluster.SortClusters(s.Clusters, cluster.ByFirstSequenceStart)

	var alignments []*DeltaAlignment

	for _, c := range s.Clusters {
		if c.IsFused {
			continue
		}
		if shadowed(alignments, c) {
			c.IsFused = true
			continue
		}

		var current *DeltaAlignment
		for target := c; target != nil; {
			target.IsFused = true

			matches := target.Matches
			if current == nil {
				current = NewDeltaAlignment(s.Reference, s.Query, s.ref, s.queryBases(target.Direction), matches[0])
				current = x.extendBackward(&alignments, current, true)
				matches = matches[1:]
			}

			for _, m := range matches {
				current = x.extendToMatch(s, &alignments, current, m)
			}

			next := x.nextCluster(s.Clusters, current)
			if !x.extendToCluster(current, next) {
				break
			}
			// Reached: continue into next without the shadow check.
			target = next
		}
	}

	return alignments
}

// Shadows reports whether a already covers c on both sequences.
func Shadows(a *DeltaAlignment, c *cluster.Cluster) bool {
	if a.Direction != c.Direction || len(c.Matches) == 0 {
		return false
	}
	first, last := c.First(), c.Last()
	return a.FirstStart <= first.RefStart && a.FirstEnd >= last.RefEnd()-1 &&
		a.SecondStart <= first.QueryStart && a.SecondEnd >= last.QueryEnd()-1
}

func shadowed(alignments []*DeltaAlignment, c *cluster.Cluster) bool {
	for _, a := range alignments {
		if Shadows(a, c) {
			return true
		}
	}
	return false
}

// accept reports whether a gap is close enough to take a candidate without
// looking further.
func (x *ChainExtender) accept(gapHigh, gapLow int) bool {
	return gapHigh < x.BreakLength ||
		gapLow*x.ValidScore+(gapHigh-gapLow)*x.SubstitutionScore >= 0
}

func gaps(gapRef, gapQuery int) (high, low int) {
	if gapRef > gapQuery {
		return gapRef, gapQuery
	}
	return gapQuery, gapRef
}

// previousAlignment returns the alignment to extend a back to, or nil. The
// most recent candidates are tried first.
func (x *ChainExtender) previousAlignment(alignments []*DeltaAlignment, a *DeltaAlignment) *DeltaAlignment {
	var best *DeltaAlignment
	bestMetric := 0

	for k := len(alignments) - 1; k >= 0; k-- {
		p := alignments[k]
		if p == a || p.Direction != a.Direction ||
			p.FirstEnd >= a.FirstStart || p.SecondEnd >= a.SecondStart {
			continue
		}

		high, low := gaps(a.FirstStart-p.FirstEnd-1, a.SecondStart-p.SecondEnd-1)
		if x.accept(high, low) {
			return p
		}
		if metric := (high << 1) - low; best == nil || metric < bestMetric {
			best, bestMetric = p, metric
		}
	}

	return best
}

// nextCluster returns the cluster to extend a forward to, or nil.
func (x *ChainExtender) nextCluster(clusters []*cluster.Cluster, a *DeltaAlignment) *cluster.Cluster {
	var best *cluster.Cluster
	bestMetric := 0

	for _, c := range clusters {
		if c.IsFused || c.Direction != a.Direction || len(c.Matches) == 0 {
			continue
		}
		first := c.First()
		if first.RefStart <= a.FirstEnd || first.QueryStart <= a.SecondEnd {
			continue
		}

		high, low := gaps(first.RefStart-a.FirstEnd-1, first.QueryStart-a.SecondEnd-1)
		if x.accept(high, low) {
			return c
		}
		if metric := (high << 1) - low; best == nil || metric < bestMetric {
			best, bestMetric = c, metric
		}
	}

	return best
}

// clampGap limits a gap to MaximumAlignmentLength symbols and reports
// whether it was longer.
func (x *ChainExtender) clampGap(gap int) (int, bool) {
	if gap > x.MaximumAlignmentLength {
		return x.MaximumAlignmentLength, true
	}
	return gap, false
}

// overflowMode adjusts mode for an extension whose target was clamped. A
// clamped target is only a limit, so the extension stops at its best point.
// When both sequences were clamped neither end is a sequence end.
func overflowMode(mode alignment.ExtendMode, refOver, queryOver bool) alignment.ExtendMode {
	if refOver || queryOver {
		mode.Optimal, mode.Forced = true, false
	}
	if refOver && queryOver {
		mode.SeqEnd = false
	}
	return mode
}

// extendBackward grows a toward the previous alignment or the sequence
// start. When the previous alignment is reached it absorbs a and is
// returned; otherwise a is returned with its start pulled back. New
// alignments are added to alignments.
func (x *ChainExtender) extendBackward(alignments *[]*DeltaAlignment, a *DeltaAlignment, allowForced bool) *DeltaAlignment {
	prev := x.previousAlignment(*alignments, a)

	refTarget, queryTarget := 0, 0
	if prev != nil {
		refTarget, queryTarget = prev.FirstEnd+1, prev.SecondEnd+1
	}

	refGap, refOver := x.clampGap(a.FirstStart - refTarget)
	queryGap, queryOver := x.clampGap(a.SecondStart - queryTarget)
	refTarget, queryTarget = a.FirstStart-refGap, a.SecondStart-queryGap
	overflow := refOver || queryOver

	mode := alignment.ExtendMode{Direction: alignment.Backward}
	switch {
	case prev == nil:
		mode.Optimal, mode.SeqEnd = true, true
	case allowForced:
		high, _ := gaps(refGap, queryGap)
		mode.Forced = high < x.BreakLength
	}
	mode = overflowMode(mode, refOver, queryOver)

	deltas, ok := x.extender.Extend(a.refBases, a.queryBases, a.FirstStart, a.SecondStart,
		&refTarget, &queryTarget, mode)

	seg := &DeltaAlignment{
		Reference:   a.Reference,
		Query:       a.Query,
		FirstStart:  refTarget,
		FirstEnd:    a.FirstStart - 1,
		SecondStart: queryTarget,
		SecondEnd:   a.SecondStart - 1,
		Direction:   a.Direction,
		Deltas:      deltas,
		refBases:    a.refBases,
		queryBases:  a.queryBases,
	}
	seg.DeltaReferencePosition = ReferencePosition(deltas)
	seg.join(a)

	if ok && prev != nil && !overflow {
		prev.join(seg)
		return prev
	}

	*a = *seg
	*alignments = append(*alignments, a)
	return a
}

// extendForward grows a toward the inclusive targets and reports whether
// they were reached without overflow.
func (x *ChainExtender) extendForward(a *DeltaAlignment, refTarget, queryTarget int, mode alignment.ExtendMode) bool {
	mode.Direction = alignment.Forward

	refGap, refOver := x.clampGap(refTarget - a.FirstEnd)
	queryGap, queryOver := x.clampGap(queryTarget - a.SecondEnd)
	refTarget, queryTarget = a.FirstEnd+refGap, a.SecondEnd+queryGap
	overflow := refOver || queryOver
	mode = overflowMode(mode, refOver, queryOver)

	deltas, ok := x.extender.Extend(a.refBases, a.queryBases, a.FirstEnd, a.SecondEnd,
		&refTarget, &queryTarget, mode)

	a.appendDeltas(deltas)
	a.FirstEnd, a.SecondEnd = refTarget, queryTarget
	return ok && !overflow
}

// extendToMatch extends a up to m and over it. When the gap cannot be
// bridged a new alignment is seeded from m and returned instead.
func (x *ChainExtender) extendToMatch(s *Synteny, alignments *[]*DeltaAlignment, a *DeltaAlignment, m mum.Match) *DeltaAlignment {
	overlap := a.FirstEnd + 1 - m.RefStart
	if o := a.SecondEnd + 1 - m.QueryStart; o > overlap {
		overlap = o
	}
	if overlap > 0 {
		if overlap >= m.Length {
			return a
		}
		m = m.Trim(overlap)
	}

	if x.extendForward(a, m.RefStart-1, m.QueryStart-1, alignment.ExtendMode{}) {
		a.FirstEnd, a.SecondEnd = m.RefEnd()-1, m.QueryEnd()-1
		return a
	}

	next := NewDeltaAlignment(s.Reference, s.Query, s.ref, s.queryBases(m.Direction), m)
	return x.extendBackward(alignments, next, false)
}

// extendToCluster extends a toward the first match of next, or to the
// sequence ends when next is nil. It reports whether next was reached.
func (x *ChainExtender) extendToCluster(a *DeltaAlignment, next *cluster.Cluster) bool {
	if next == nil {
		x.extendForward(a, len(a.refBases)-1, len(a.queryBases)-1,
			alignment.ExtendMode{Optimal: true, SeqEnd: true})
		return false
	}

	first := next.First()
	high, _ := gaps(first.RefStart-1-a.FirstEnd, first.QueryStart-1-a.SecondEnd)
	mode := alignment.ExtendMode{Forced: high < x.BreakLength}

	return x.extendForward(a, first.RefStart-1, first.QueryStart-1, mode)
}
