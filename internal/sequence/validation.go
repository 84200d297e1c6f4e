package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence is empty.
type EmptySequenceError struct{}

func (e *EmptySequenceError) Error() string {
	return "sequence must have at least one base"
}

func (e *EmptySequenceError) IsSequenceError() {}

// InvalidBaseError is returned when an invalid base is encountered.
type InvalidBaseError struct {
	Position int
	Found    rune
	SeqType  SequenceType
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid %s base '%c' at position %d", e.SeqType, e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

// SeparatorError is returned when a sequence to be concatenated already
// contains the concatenation separator.
type SeparatorError struct {
	ID       string
	Position int
}

func (e *SeparatorError) Error() string {
	return fmt.Sprintf("sequence %q contains separator '%c' at position %d", e.ID, Separator, e.Position)
}

func (e *SeparatorError) IsSequenceError() {}

// Validate checks every base of bases against the alphabet of seqType.
// Unknown types are validated as DNA.
func Validate(bases string, seqType SequenceType) error {
	valid := ValidDNABases
	switch seqType {
	case RNA:
		valid = ValidRNABases
	case Protein:
		valid = ValidProteins
	}

	for i, b := range bases {
		if !valid[b] {
			return &InvalidBaseError{Position: i, Found: b, SeqType: seqType}
		}
	}
	return nil
}

// ValidateDNA validates that a string contains only valid DNA bases.
func ValidateDNA(bases string) error {
	return Validate(bases, DNA)
}

// ValidateRNA validates that a string contains only valid RNA bases.
func ValidateRNA(bases string) error {
	return Validate(bases, RNA)
}
