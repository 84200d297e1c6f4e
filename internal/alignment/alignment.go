package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/nucmer-go/internal/mum"
)

// Alignment is one aligned segment between a reference and a query.
//
// FirstSeq and SecondSeq hold the gapped reference and query text of the
// segment. Start and end positions are 0-based and inclusive; query positions
// refer to the reverse complemented query when Direction is mum.Reverse.
// The offsets shift the gapped texts so that they line up when printed
// from the start of their sequences.
type Alignment struct {
	FirstSeq     string
	SecondSeq    string
	Consensus    string
	FirstOffset  int
	SecondOffset int
	Score        int
	FirstStart   int
	FirstEnd     int
	SecondStart  int
	SecondEnd    int
	Direction    mum.Direction
	Identity     float64
}

// NewAlignment creates a new alignment segment.
func NewAlignment(first, second string, score int) (*Alignment, error) {
	if len(first) != len(second) {
		return nil, fmt.Errorf("aligned sequences must have equal length")
	}

	a := &Alignment{
		FirstSeq:  first,
		SecondSeq: second,
		Score:     score,
	}
	a.Identity = a.calculateIdentity()
	return a, nil
}

// calculateIdentity calculates the sequence identity.
func (a *Alignment) calculateIdentity() float64 {
	if len(a.FirstSeq) == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(len(a.FirstSeq))
}

// Length returns the number of alignment columns.
func (a *Alignment) Length() int {
	return len(a.FirstSeq)
}

// FirstLength returns the number of reference symbols covered.
func (a *Alignment) FirstLength() int {
	return a.FirstEnd - a.FirstStart + 1
}

// SecondLength returns the number of query symbols covered.
func (a *Alignment) SecondLength() int {
	return a.SecondEnd - a.SecondStart + 1
}

// MatchCount returns the number of matches.
func (a *Alignment) MatchCount() int {
	count := 0
	for i := 0; i < len(a.FirstSeq); i++ {
		if a.FirstSeq[i] != Gap && upper(a.FirstSeq[i]) == upper(a.SecondSeq[i]) {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of mismatches.
func (a *Alignment) MismatchCount() int {
	count := 0
	for i := 0; i < len(a.FirstSeq); i++ {
		if a.FirstSeq[i] != Gap && a.SecondSeq[i] != Gap &&
			upper(a.FirstSeq[i]) != upper(a.SecondSeq[i]) {
			count++
		}
	}
	return count
}

// GapsFirst returns the number of gaps in the reference text.
func (a *Alignment) GapsFirst() int {
	return strings.Count(a.FirstSeq, string(Gap))
}

// GapsSecond returns the number of gaps in the query text.
func (a *Alignment) GapsSecond() int {
	return strings.Count(a.SecondSeq, string(Gap))
}

// TotalGaps returns the total number of gaps.
func (a *Alignment) TotalGaps() int {
	return a.GapsFirst() + a.GapsSecond()
}

// Errors returns the number of mismatching columns, gaps included.
func (a *Alignment) Errors() int {
	return a.MismatchCount() + a.TotalGaps()
}

// GapOpenings counts the number of gap openings.
func (a *Alignment) GapOpenings() int {
	openings := 0
	inGap1, inGap2 := false, false

	for i := 0; i < len(a.FirstSeq); i++ {
		if a.FirstSeq[i] == Gap && !inGap1 {
			openings++
			inGap1 = true
		} else if a.FirstSeq[i] != Gap {
			inGap1 = false
		}

		if a.SecondSeq[i] == Gap && !inGap2 {
			openings++
			inGap2 = true
		} else if a.SecondSeq[i] != Gap {
			inGap2 = false
		}
	}

	return openings
}

// ToCIGAR generates a CIGAR string with the reference as the template.
func (a *Alignment) ToCIGAR() string {
	if len(a.FirstSeq) == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for i := 0; i < len(a.FirstSeq); i++ {
		var op byte
		switch {
		case a.FirstSeq[i] == Gap:
			op = 'I'
		case a.SecondSeq[i] == Gap:
			op = 'D'
		case upper(a.FirstSeq[i]) == upper(a.SecondSeq[i]):
			op = 'M'
		default:
			op = 'X'
		}

		if op == currentOp {
			count++
			continue
		}
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, currentOp)
		}
		currentOp = op
		count = 1
	}

	fmt.Fprintf(&cigar, "%d%c", count, currentOp)
	return cigar.String()
}

// Format returns a formatted string representation of the alignment.
func (a *Alignment) Format() string {
	var matchLine strings.Builder
	for i := 0; i < len(a.FirstSeq); i++ {
		switch {
		case a.FirstSeq[i] == Gap || a.SecondSeq[i] == Gap:
			matchLine.WriteByte(' ')
		case upper(a.FirstSeq[i]) == upper(a.SecondSeq[i]):
			matchLine.WriteByte('|')
		default:
			matchLine.WriteByte('.')
		}
	}

	return fmt.Sprintf("Ref:   %s %d..%d\n       %s\nQuery: %s %d..%d (%s)\nScore: %d\nIdentity: %.1f%%\nCIGAR: %s",
		a.FirstSeq, a.FirstStart+1, a.FirstEnd+1, matchLine.String(),
		a.SecondSeq, a.SecondStart+1, a.SecondEnd+1, a.Direction,
		a.Score, a.Identity*100, a.ToCIGAR())
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { score: %d, identity: %.1f%%, length: %d, %s }",
		a.Score, a.Identity*100, a.Length(), a.Direction)
}
