// Package sequence provides DNA/RNA sequence types with validation.
//
// Sequences are normalized to upper case at construction time and validated
// against the alphabet of their SequenceType. Reference sets are joined into a
// single searchable sequence with Concatenate.
package sequence

import (
	"fmt"
	"strings"
)

// SequenceType represents the alphabet of a biological sequence.
type SequenceType int

const (
	// DNA represents a DNA sequence (A, C, G, T and IUPAC ambiguity codes)
	DNA SequenceType = iota
	// RNA represents an RNA sequence (A, C, G, U and IUPAC ambiguity codes)
	RNA
	// Protein represents an amino acid sequence
	Protein
	// Unknown represents an unknown sequence type
	Unknown
)

func (t SequenceType) String() string {
	switch t {
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	case Protein:
		return "Protein"
	default:
		return "Unknown"
	}
}

// IsNucleotide reports whether the type is DNA or RNA.
func (t SequenceType) IsNucleotide() bool {
	return t == DNA || t == RNA
}

// Valid symbols per alphabet
var (
	ValidDNABases = bases("ACGTNRYSWKMBDHV")
	ValidRNABases = bases("ACGUNRYSWKMBDHV")
	ValidProteins = bases("ACDEFGHIKLMNPQRSTVWYBZJUOX*")
)

func bases(s string) map[rune]bool {
	m := make(map[rune]bool, len(s))
	for _, r := range s {
		m[r] = true
	}
	return m
}

// Sequence represents a validated biological sequence.
type Sequence struct {
	Bases       string
	ID          string
	Description string
	SeqType     SequenceType
}

// New creates a new DNA sequence with validation.
func New(bases string) (*Sequence, error) {
	return WithMetadata(bases, "", "", DNA)
}

// WithID creates a new DNA sequence with an identifier.
func WithID(bases, id string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	seq, err := New(bases)
	if err != nil {
		return nil, err
	}

	seq.ID = id
	return seq, nil
}

// WithMetadata creates a new sequence with full metadata.
func WithMetadata(bases, id, description string, seqType SequenceType) (*Sequence, error) {
	normalized := strings.ToUpper(bases)

	if len(normalized) == 0 {
		return nil, &EmptySequenceError{}
	}

	if err := Validate(normalized, seqType); err != nil {
		return nil, err
	}

	return &Sequence{
		Bases:       normalized,
		ID:          id,
		Description: description,
		SeqType:     seqType,
	}, nil
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Bases)
}

var complements = map[byte]byte{
	'A': 'T', 'T': 'A', 'U': 'A', 'C': 'G', 'G': 'C',
	'R': 'Y', 'Y': 'R', 'S': 'S', 'W': 'W', 'K': 'M', 'M': 'K',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', 'N': 'N',
}

// complementBase returns the complement of a nucleotide for the given alphabet.
func complementBase(c byte, t SequenceType) byte {
	comp, ok := complements[c]
	if !ok {
		return 'N'
	}
	if comp == 'T' && t == RNA {
		return 'U'
	}
	return comp
}

// Complement returns the complement of the sequence (A<->T/U, C<->G).
func (s *Sequence) Complement() (*Sequence, error) {
	if !s.SeqType.IsNucleotide() {
		return nil, fmt.Errorf("complement only available for nucleotide sequences")
	}

	comp := make([]byte, len(s.Bases))
	for i := 0; i < len(s.Bases); i++ {
		comp[i] = complementBase(s.Bases[i], s.SeqType)
	}

	return &Sequence{
		Bases:       string(comp),
		ID:          s.ID,
		Description: s.Description,
		SeqType:     s.SeqType,
	}, nil
}

// Reverse returns the reverse of the sequence.
func (s *Sequence) Reverse() *Sequence {
	b := []byte(s.Bases)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return &Sequence{
		Bases:       string(b),
		ID:          s.ID,
		Description: s.Description,
		SeqType:     s.SeqType,
	}
}

// ReverseComplement returns the reverse complement of the sequence.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	comp, err := s.Complement()
	if err != nil {
		return nil, err
	}
	return comp.Reverse(), nil
}

// GCContent calculates the GC content (proportion of G and C bases).
func (s *Sequence) GCContent() float64 {
	if len(s.Bases) == 0 {
		return 0.0
	}

	gcCount := 0
	for i := 0; i < len(s.Bases); i++ {
		if s.Bases[i] == 'G' || s.Bases[i] == 'C' {
			gcCount++
		}
	}

	return float64(gcCount) / float64(len(s.Bases))
}

// ToFASTA returns the sequence in FASTA format.
func (s *Sequence) ToFASTA() string {
	var header string
	if s.ID != "" {
		header = ">" + s.ID
		if s.Description != "" {
			header += " " + s.Description
		}
	} else {
		header = ">sequence"
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteRune('\n')

	// Split sequence into 80-character lines
	for i := 0; i < len(s.Bases); i += 80 {
		end := i + 80
		if end > len(s.Bases) {
			end = len(s.Bases)
		}
		sb.WriteString(s.Bases[i:end])
		sb.WriteRune('\n')
	}

	return sb.String()
}

// String returns a string representation of the sequence.
func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Bases)
	}
	return s.Bases
}

// Equal checks equality with another sequence.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil {
		return false
	}
	return s.Bases == other.Bases && s.SeqType == other.SeqType
}

// SameID compares identifiers case-insensitively.
func (s *Sequence) SameID(other *Sequence) bool {
	return other != nil && strings.EqualFold(s.ID, other.ID)
}
