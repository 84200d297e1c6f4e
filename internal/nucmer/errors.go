package nucmer

import (
	"fmt"

	"github.com/aria-lang/nucmer-go/internal/sequence"
)

// InputError is implemented by every error reported while validating the
// input of an alignment run.
type InputError interface {
	error
	IsInputError()
}

// ValidationError is returned when an option or input list is unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) IsInputError() {}

// AlphabetError is returned for a sequence that is not nucleotide or whose
// alphabet differs from the other inputs.
type AlphabetError struct {
	ID       string
	Found    sequence.SequenceType
	Expected sequence.SequenceType
}

func (e *AlphabetError) Error() string {
	if e.Expected == sequence.Unknown {
		return fmt.Sprintf("sequence %q: %s is not a nucleotide alphabet", e.ID, e.Found)
	}
	return fmt.Sprintf("sequence %q: alphabet %s does not match %s", e.ID, e.Found, e.Expected)
}

func (e *AlphabetError) IsInputError() {}

// SequenceTooShortError is returned for a sequence shorter than the seed
// length.
type SequenceTooShortError struct {
	ID      string
	Length  int
	Minimum int
}

func (e *SequenceTooShortError) Error() string {
	return fmt.Sprintf("sequence %q has %d bases, at least %d required", e.ID, e.Length, e.Minimum)
}

func (e *SequenceTooShortError) IsInputError() {}
