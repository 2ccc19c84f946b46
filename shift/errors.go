package shift

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSeparator is the result of parsing a non-empty record without a separator
	ErrMissingSeparator = errors.New("the record has no separator")
	// ErrUnknownTag is the result of parsing a record with an unrecognised category tag
	ErrUnknownTag = errors.New("unknown category tag")
	// ErrInvalidRepresentation is the result of decoding a transformed character which cannot belong to the stored category
	ErrInvalidRepresentation = errors.New("invalid character representation")

	// ErrOperationInProgress is the result of any invalid operation on an entity which is already being processed
	ErrOperationInProgress = errors.New("the operation is in progress")
)

// FormatError is returned when the encoded stream contains a malformed record.
// Line is the 1-based line number of the record within the stream, or zero if unknown.
type FormatError struct {
	Line int
	Text string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed record at line %d (%q): %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("malformed record %q: %v", e.Text, e.Err)
}

// Unwrap returns the underlying cause
func (e *FormatError) Unwrap() error {
	return e.Err
}
