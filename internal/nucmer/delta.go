package nucmer

import (
	"fmt"

	"github.com/aria-lang/nucmer-go/internal/alignment"
	"github.com/aria-lang/nucmer-go/internal/mum"
	"github.com/aria-lang/nucmer-go/internal/sequence"
)

// DeltaAlignment is a gapped alignment stored as start and end positions
// plus a list of indel deltas.
//
// A positive delta d stands for d-1 aligned pairs followed by a reference
// symbol against a gap; a negative delta for |d|-1 aligned pairs followed by
// a gap against a query symbol. Positions are 0-based and inclusive. Query
// positions of Reverse alignments refer to the reverse complemented query.
type DeltaAlignment struct {
	Reference *sequence.Sequence
	Query     *sequence.Sequence

	FirstStart  int
	FirstEnd    int
	SecondStart int
	SecondEnd   int
	Direction   mum.Direction
	Deltas      []int

	// DeltaReferencePosition is the number of reference symbols covered up
	// to and including the last delta.
	DeltaReferencePosition int

	refBases   []byte
	queryBases []byte
}

// NewDeltaAlignment seeds an alignment from an exact match. ref and query
// are the bases the match coordinates refer to.
func NewDeltaAlignment(reference, query *sequence.Sequence, ref, qry []byte, m mum.Match) *DeltaAlignment {
	return &DeltaAlignment{
		Reference:   reference,
		Query:       query,
		FirstStart:  m.RefStart,
		FirstEnd:    m.RefEnd() - 1,
		SecondStart: m.QueryStart,
		SecondEnd:   m.QueryEnd() - 1,
		Direction:   m.Direction,
		refBases:    ref,
		queryBases:  qry,
	}
}

// ReferencePosition sums the reference symbols consumed by deltas.
func ReferencePosition(deltas []int) int {
	pos := 0
	for _, d := range deltas {
		if d > 0 {
			pos += d
		} else {
			pos += -d - 1
		}
	}
	return pos
}

// FirstLength returns the number of reference symbols covered.
func (d *DeltaAlignment) FirstLength() int {
	return d.FirstEnd - d.FirstStart + 1
}

// SecondLength returns the number of query symbols covered.
func (d *DeltaAlignment) SecondLength() int {
	return d.SecondEnd - d.SecondStart + 1
}

// appendDeltas adds deltas for symbols that follow the current end. Aligned
// pairs after the last delta are folded into the first new one.
func (d *DeltaAlignment) appendDeltas(deltas []int) {
	if len(deltas) == 0 {
		return
	}

	pending := d.FirstLength() - d.DeltaReferencePosition
	first := deltas[0]
	if first > 0 {
		first += pending
	} else {
		first -= pending
	}

	d.Deltas = append(d.Deltas, first)
	d.Deltas = append(d.Deltas, deltas[1:]...)
	d.DeltaReferencePosition = ReferencePosition(d.Deltas)
}

// join appends next, which must start right after d ends.
func (d *DeltaAlignment) join(next *DeltaAlignment) {
	d.appendDeltas(next.Deltas)
	d.FirstEnd, d.SecondEnd = next.FirstEnd, next.SecondEnd
}

// Errors counts mismatches and indels.
func (d *DeltaAlignment) Errors() int {
	a := ConvertDeltaToAlignment(d)
	return a.Errors()
}

func (d *DeltaAlignment) String() string {
	return fmt.Sprintf("DeltaAlignment { ref: %d..%d, query: %d..%d, %s, deltas: %d }",
		d.FirstStart, d.FirstEnd, d.SecondStart, d.SecondEnd, d.Direction, len(d.Deltas))
}

// ConvertDeltaToAlignment expands a delta alignment into gapped text.
//
// The offsets line the texts up from the start of their sequences: the
// sequence starting later is not offset and the other is shifted right by
// the difference.
func ConvertDeltaToAlignment(d *DeltaAlignment) *alignment.Alignment {
	ref := d.refBases[d.FirstStart : d.FirstEnd+1]
	query := d.queryBases[d.SecondStart : d.SecondEnd+1]

	size := len(ref) + len(query)
	first := make([]byte, 0, size)
	second := make([]byte, 0, size)

	i, j := 0, 0
	for _, delta := range d.Deltas {
		run := delta - 1
		if delta < 0 {
			run = -delta - 1
		}
		first = append(first, ref[i:i+run]...)
		second = append(second, query[j:j+run]...)
		i += run
		j += run

		if delta > 0 {
			first = append(first, ref[i])
			second = append(second, alignment.Gap)
			i++
		} else {
			first = append(first, alignment.Gap)
			second = append(second, query[j])
			j++
		}
	}
	first = append(first, ref[i:]...)
	second = append(second, query[j:]...)

	for len(first) < len(second) {
		first = append(first, alignment.Gap)
	}
	for len(second) < len(first) {
		second = append(second, alignment.Gap)
	}

	a, _ := alignment.NewAlignment(string(first), string(second), 0)
	a.FirstStart, a.FirstEnd = d.FirstStart, d.FirstEnd
	a.SecondStart, a.SecondEnd = d.SecondStart, d.SecondEnd
	a.Direction = d.Direction

	if d.FirstStart > d.SecondStart {
		a.SecondOffset = d.FirstStart - d.SecondStart
	} else {
		a.FirstOffset = d.SecondStart - d.FirstStart
	}

	return a
}
