package sequence

import (
	"bytes"
	"fmt"
)

// Separator joins reference sequences inside a Concatenated sequence. It is
// outside every nucleotide alphabet, so no seed match can span two references.
const Separator = '+'

// Concatenated is a set of sequences joined into one searchable byte slice.
// Sequence i occupies [Offset(i), Offset(i)+Sequences[i].Len()), followed by
// one Separator unless it is the last sequence.
type Concatenated struct {
	Sequences []*Sequence
	Bases     []byte
	offsets   []int
}

// Concatenate joins seqs in order. A single sequence is wrapped without a
// separator.
func Concatenate(seqs []*Sequence) (*Concatenated, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("nothing to concatenate")
	}

	total := len(seqs) - 1
	for i, s := range seqs {
		if s == nil {
			return nil, fmt.Errorf("sequence %d is nil", i)
		}
		total += s.Len()
	}

	c := &Concatenated{
		Sequences: seqs,
		Bases:     make([]byte, 0, total),
		offsets:   make([]int, len(seqs)),
	}

	for i, s := range seqs {
		if pos := bytes.IndexByte([]byte(s.Bases), Separator); pos >= 0 {
			return nil, &SeparatorError{ID: s.ID, Position: pos}
		}
		if i > 0 {
			c.Bases = append(c.Bases, Separator)
		}
		c.offsets[i] = len(c.Bases)
		c.Bases = append(c.Bases, s.Bases...)
	}

	return c, nil
}

// Len returns the length of the joined sequence, separators included.
func (c *Concatenated) Len() int {
	return len(c.Bases)
}

// Offset returns where sequence i starts in the joined sequence.
func (c *Concatenated) Offset(i int) int {
	return c.offsets[i]
}

// Locate maps an offset in the joined sequence back to the index of the
// sequence it falls in and the local offset inside that sequence. ok is false
// for offsets that are out of range or land on a separator.
func (c *Concatenated) Locate(offset int) (index, local int, ok bool) {
	if offset < 0 {
		return 0, 0, false
	}

	local = offset
	for i, s := range c.Sequences {
		if local < s.Len() {
			return i, local, true
		}
		local -= s.Len() + 1
		if local < 0 {
			return i, 0, false
		}
	}
	return 0, 0, false
}
