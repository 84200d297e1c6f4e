// Package mum finds maximal unique matches (MUMs) between a reference and a
// query sequence.
//
// The reference is indexed once with a suffix array; the index is read-only
// after Build and can be searched by many queries concurrently.
package mum

import "fmt"

// Direction is the strand of the query a match was found on.
type Direction int

const (
	// Forward means the match is on the query as given
	Forward Direction = iota
	// Reverse means the match is on the reverse complement of the query
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Match is an exact match between reference and query. Positions are 0-based
// offsets into the indexed reference and into the searched query (the reverse
// complemented query for Reverse matches).
type Match struct {
	RefStart   int
	QueryStart int
	Length     int
	Direction  Direction
}

// RefEnd returns the exclusive end of the match on the reference.
func (m Match) RefEnd() int {
	return m.RefStart + m.Length
}

// QueryEnd returns the exclusive end of the match on the query.
func (m Match) QueryEnd() int {
	return m.QueryStart + m.Length
}

// Diagonal returns RefStart - QueryStart; matches on one diagonal are collinear.
func (m Match) Diagonal() int {
	return m.RefStart - m.QueryStart
}

// Trim drops the first n symbols of the match.
func (m Match) Trim(n int) Match {
	m.RefStart += n
	m.QueryStart += n
	m.Length -= n
	return m
}

func (m Match) String() string {
	return fmt.Sprintf("Match { ref: %d, query: %d, length: %d, %s }",
		m.RefStart, m.QueryStart, m.Length, m.Direction)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
