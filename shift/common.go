package shift

import (
	"bufio"
	"context"
	"unicode/utf8"
)

// None represents an empty struct{}
type None struct{}

const defaultBufferSize = 1024

// readRecord reads the next character off the input and turns it into a record.
// An invalid UTF-8 byte is carried verbatim in a record of the Other category.
func readRecord(input *bufio.Reader, p Params) (Record, error) {
	r, size, err := input.ReadRune()
	if err != nil {
		return Record{}, err
	}
	if r == utf8.RuneError && size == 1 {
		if err := input.UnreadRune(); err != nil {
			return Record{}, err
		}
		b, err := input.ReadByte()
		if err != nil {
			return Record{}, err
		}
		return Record{Repr: string([]byte{b}), Category: Other}, nil
	}
	return NewRecord(r, p), nil
}

func isCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
