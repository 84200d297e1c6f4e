package alignment

import "math"

// Extender defaults.
const (
	DefaultBreakLength = 200
	DefaultBandWidth   = 100
)

const negInf = math.MinInt32 / 2

// ExtendDirection is the side of an alignment an extension grows from.
type ExtendDirection int

const (
	// Forward extends past the alignment end
	Forward ExtendDirection = iota
	// Backward extends before the alignment start
	Backward
)

// ExtendMode selects how an extension treats its target.
type ExtendMode struct {
	Direction ExtendDirection

	// Optimal stops at the best scoring point instead of the target. Forced
	// is ignored in optimal mode.
	Optimal bool
	// Forced aligns all the way to the target and never fails.
	Forced bool
	// SeqEnd accepts an optimal extension that ends on the last symbol of
	// either sequence.
	SeqEnd bool
}

// Extender fills the space between an alignment and a target position with
// a banded affine-gap alignment.
type Extender struct {
	Scoring *ScoringMatrix

	// BreakLength is how far a bounded extension may run past its best
	// scoring point before it is abandoned.
	BreakLength int
	// BandWidth is the number of diagonals searched on each side of the
	// line from the anchor to the target.
	BandWidth int
}

// NewExtender creates an Extender. A nil scoring matrix selects
// NucmerDefault.
func NewExtender(scoring *ScoringMatrix, breakLength int) *Extender {
	if scoring == nil {
		scoring = NucmerDefault()
	}
	return &Extender{
		Scoring:     scoring,
		BreakLength: breakLength,
		BandWidth:   DefaultBandWidth,
	}
}

// Extend aligns ref and query from an anchor toward a target.
//
// Going forward the anchors are the inclusive ends of the alignment and the
// targets the last positions to consume. Going backward the anchors are the
// inclusive starts and the targets the first positions to consume. On return
// the targets hold the positions actually reached, which equal the anchors
// when nothing was consumed.
//
// The returned deltas describe the new segment only, in left to right order.
// ok reports whether the nominal target was reached.
func (e *Extender) Extend(ref, query []byte, refAnchor, queryAnchor int,
	refTarget, queryTarget *int, mode ExtendMode) ([]int, bool) {
	var a, b []byte
	if mode.Direction == Backward {
		*refTarget = clamp(*refTarget, 0, refAnchor)
		*queryTarget = clamp(*queryTarget, 0, queryAnchor)
		a = reversed(ref[*refTarget:refAnchor])
		b = reversed(query[*queryTarget:queryAnchor])
	} else {
		*refTarget = clamp(*refTarget, refAnchor, len(ref)-1)
		*queryTarget = clamp(*queryTarget, queryAnchor, len(query)-1)
		a = ref[refAnchor+1 : *refTarget+1]
		b = query[queryAnchor+1 : *queryTarget+1]
	}

	path, ok := e.align(a, b, mode)

	usedRef, usedQuery := consumed(path)
	if mode.Direction == Backward {
		*refTarget = refAnchor - usedRef
		*queryTarget = queryAnchor - usedQuery
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
	} else {
		*refTarget = refAnchor + usedRef
		*queryTarget = queryAnchor + usedQuery
	}

	return toDeltas(path), ok
}

// align returns the path from the origin outward and whether the full
// rectangle was aligned.
func (e *Extender) align(a, b []byte, mode ExtendMode) ([]AlignDirection, bool) {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil, true
	}

	g := e.fill(a, b, mode.Optimal)

	if mode.Optimal {
		path := g.traceback(g.bestI, g.bestJ)
		reached := g.bestI == n && g.bestJ == m
		if mode.SeqEnd && (g.bestI == n || g.bestJ == m) {
			reached = true
		}
		return path, reached
	}

	path := g.traceback(n, m)
	if mode.Forced {
		return path, true
	}

	if k, ok := e.breakPoint(a, b, path); !ok {
		return path[:k], false
	}
	return path, true
}

// breakPoint scores path from the origin and reports the prefix length at the
// best score if the path runs more than BreakLength columns past it.
func (e *Extender) breakPoint(a, b []byte, path []AlignDirection) (int, bool) {
	s := e.Scoring
	score, best, bestK := 0, 0, 0
	i, j := 0, 0
	last := Stop

	for k, d := range path {
		switch d {
		case Diagonal:
			score += s.Score(a[i], b[j])
			i++
			j++
		case Up:
			if last != Up {
				score += s.GapOpenPenalty
			}
			score += s.GapExtendPenalty
			i++
		case Left:
			if last != Left {
				score += s.GapOpenPenalty
			}
			score += s.GapExtendPenalty
			j++
		}
		last = d

		if score >= best {
			best, bestK = score, k+1
		}
		if k+1-bestK > e.BreakLength {
			return bestK, false
		}
	}

	return len(path), true
}

const (
	eExtend = 1 << 2
	fExtend = 1 << 3
)

// grid is the banded traceback matrix. Row i covers columns lo[i]..hi[i].
type grid struct {
	lo, hi, off []int
	tb          []byte

	bestI, bestJ int
}

func (g *grid) at(i, j int) byte {
	return g.tb[g.off[i]+j-g.lo[i]]
}

func (e *Extender) newGrid(n, m int, diagonal bool) *grid {
	width := e.BandWidth
	if width <= 0 {
		width = DefaultBandWidth
	}

	g := &grid{
		lo:  make([]int, n+1),
		hi:  make([]int, n+1),
		off: make([]int, n+1),
	}

	size := 0
	for i := 0; i <= n; i++ {
		var lo, hi int
		switch {
		case diagonal:
			lo, hi = i-width, i+width
		case n == 0:
			lo, hi = 0, m
		default:
			w := width + (m+n-1)/n
			lo = i*m/n - w
			hi = (i*m+n-1)/n + w
		}
		lo, hi = clamp(lo, 0, m), clamp(hi, 0, m)
		if lo > hi || (diagonal && i-width > m) {
			lo, hi = m+1, m
		}

		g.lo[i], g.hi[i], g.off[i] = lo, hi, size
		size += hi - lo + 1
	}

	g.tb = make([]byte, size)
	return g
}

// fill runs the Gotoh recurrences over the band. H is the best score ending
// in any state, E ends with a reference symbol against a gap and F with a gap
// against a query symbol.
func (e *Extender) fill(a, b []byte, optimal bool) *grid {
	n, m := len(a), len(b)
	s := e.Scoring
	openExt := s.GapCost(1)

	g := e.newGrid(n, m, optimal)

	hPrev, ePrev := newRow(m), newRow(m)
	hCur, eCur, fCur := newRow(m), newRow(m), newRow(m)
	best := 0

	for i := 0; i <= n; i++ {
		// Clear what the current buffers held two rows ago.
		if i >= 2 {
			for j := g.lo[i-2]; j <= g.hi[i-2]; j++ {
				hCur[j], eCur[j], fCur[j] = negInf, negInf, negInf
			}
		}
		for j := g.lo[i]; j <= g.hi[i]; j++ {
			if i == 0 && j == 0 {
				hCur[0], eCur[0], fCur[0] = 0, negInf, negInf
				g.tb[0] = byte(Stop)
				continue
			}

			var t byte

			ev := negInf
			if i > 0 {
				fromH, fromE := hPrev[j]+openExt, ePrev[j]+s.GapExtendPenalty
				ev = fromH
				if fromE > fromH {
					ev = fromE
					t |= eExtend
				}
			}

			fv := negInf
			if j > 0 {
				fromH, fromF := hCur[j-1]+openExt, fCur[j-1]+s.GapExtendPenalty
				fv = fromH
				if fromF > fromH {
					fv = fromF
					t |= fExtend
				}
			}

			hv, src := negInf, Stop
			if i > 0 && j > 0 {
				hv, src = hPrev[j-1]+s.Score(a[i-1], b[j-1]), Diagonal
			}
			if ev > hv {
				hv, src = ev, Up
			}
			if fv > hv {
				hv, src = fv, Left
			}

			hCur[j], eCur[j], fCur[j] = hv, ev, fv
			g.tb[g.off[i]+j-g.lo[i]] = t | byte(src)

			if optimal && (hv > best || (hv == best && i+j > g.bestI+g.bestJ)) {
				best, g.bestI, g.bestJ = hv, i, j
			}
		}

		hPrev, hCur = hCur, hPrev
		ePrev, eCur = eCur, ePrev
		// F never reads the previous row.
		for j := g.lo[i]; j <= g.hi[i]; j++ {
			fCur[j] = negInf
		}
	}

	return g
}

// traceback walks from (i, j) back to the origin and returns the path in
// origin-outward order.
func (g *grid) traceback(i, j int) []AlignDirection {
	const (
		inH = iota
		inE
		inF
	)

	path := make([]AlignDirection, 0, i+j)
	state := inH
	for i > 0 || j > 0 {
		t := g.at(i, j)
		switch state {
		case inH:
			switch AlignDirection(t & 3) {
			case Diagonal:
				path = append(path, Diagonal)
				i--
				j--
			case Up:
				state = inE
			case Left:
				state = inF
			default:
				panic("alignment: traceback left the band")
			}
		case inE:
			path = append(path, Up)
			if t&eExtend == 0 {
				state = inH
			}
			i--
		case inF:
			path = append(path, Left)
			if t&fExtend == 0 {
				state = inH
			}
			j--
		}
	}

	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// toDeltas encodes a left to right path as signed deltas.
func toDeltas(path []AlignDirection) []int {
	var deltas []int
	count := 0
	for _, d := range path {
		count++
		switch d {
		case Up:
			deltas = append(deltas, count)
			count = 0
		case Left:
			deltas = append(deltas, -count)
			count = 0
		}
	}
	return deltas
}

func consumed(path []AlignDirection) (ref, query int) {
	for _, d := range path {
		switch d {
		case Diagonal:
			ref++
			query++
		case Up:
			ref++
		case Left:
			query++
		}
	}
	return ref, query
}

func newRow(m int) []int {
	row := make([]int, m+1)
	for j := range row {
		row[j] = negInf
	}
	return row
}

func reversed(s []byte) []byte {
	out := make([]byte, len(s))
	for i, c := range s {
		out[len(s)-1-i] = c
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
