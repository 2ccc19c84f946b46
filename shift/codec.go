package shift

import (
	"fmt"
	"unicode/utf8"
)

// NewlineMarker is the literal which stands in for a line break in an encoded record.
const NewlineMarker = "[NL]"

// EncodeChar returns the textual representation of the transformed character.
//
// The character must belong to the specified category (see Classify).
// Newlines are replaced with NewlineMarker and the characters of the Other category are returned unchanged.
func EncodeChar(r rune, c Category, p Params) string {
	switch c {
	case Newline:
		return NewlineMarker
	case LowerFirstHalf:
		return string(rotate(r, c, p.product()))
	case LowerSecondHalf:
		return string(rotate(r, c, -p.sum()))
	case UpperFirstHalf:
		return string(rotate(r, c, -p.first()))
	case UpperSecondHalf:
		return string(rotate(r, c, p.square()))
	case Other:
		return string(r)
	}
	panic(fmt.Sprintf("shift: invalid category %d", c))
}

// DecodeChar reverses EncodeChar using the category stored next to the transformed character.
//
// The transformed character is never classified again. The representation of a letter category
// must be a single letter of the same case and the representation of the Other category must be
// a single character, otherwise a *FormatError will be returned. The representation of a Newline is ignored.
func DecodeChar(repr string, c Category, p Params) (string, error) {
	switch c {
	case Newline:
		return "\n", nil
	case LowerFirstHalf:
		return unrotate(repr, c, -p.product())
	case LowerSecondHalf:
		return unrotate(repr, c, p.sum())
	case UpperFirstHalf:
		return unrotate(repr, c, p.first())
	case UpperSecondHalf:
		return unrotate(repr, c, -p.square())
	case Other:
		if repr == "" || utf8.RuneCountInString(repr) != 1 {
			return "", &FormatError{Text: repr, Err: ErrInvalidRepresentation}
		}
		return repr, nil
	}
	panic(fmt.Sprintf("shift: invalid category %d", c))
}

func unrotate(repr string, c Category, delta int) (string, error) {
	base := c.base()
	if len(repr) != 1 || repr[0] < byte(base) || repr[0] >= byte(base)+alphabetLength {
		return "", &FormatError{Text: repr, Err: ErrInvalidRepresentation}
	}
	return string(rotate(rune(repr[0]), c, delta)), nil
}

func rotate(r rune, c Category, delta int) rune {
	base := c.base()
	return base + rune(mod(int(r-base)+delta))
}
