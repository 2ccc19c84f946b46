package shift

import "fmt"

// Category classifies a character by the substitution rule applied to it.
// The category of a character is decided once at encoding time and travels
// with the encoded record, so decoding never needs to classify a transformed character.
type Category int8

const (
	// Newline the line feed character
	Newline Category = iota
	// LowerFirstHalf lower case letters from 'a' to 'm'
	LowerFirstHalf
	// LowerSecondHalf lower case letters from 'n' to 'z'
	LowerSecondHalf
	// UpperFirstHalf upper case letters from 'A' to 'M'
	UpperFirstHalf
	// UpperSecondHalf upper case letters from 'N' to 'Z'
	UpperSecondHalf
	// Other any other character, including digits, punctuation and whitespace other than '\n'
	Other
)

// Categories lists every category in declaration order.
var Categories = []Category{Newline, LowerFirstHalf, LowerSecondHalf, UpperFirstHalf, UpperSecondHalf, Other}

// Classify returns the category of the character.
func Classify(r rune) Category {
	switch {
	case r == '\n':
		return Newline
	case 'a' <= r && r <= 'm':
		return LowerFirstHalf
	case 'n' <= r && r <= 'z':
		return LowerSecondHalf
	case 'A' <= r && r <= 'M':
		return UpperFirstHalf
	case 'N' <= r && r <= 'Z':
		return UpperSecondHalf
	default:
		return Other
	}
}

// String returns the short tag which represents the category in an encoded record
func (c Category) String() string {
	switch c {
	case Newline:
		return "nl"
	case LowerFirstHalf:
		return "lm"
	case LowerSecondHalf:
		return "nz"
	case UpperFirstHalf:
		return "AM"
	case UpperSecondHalf:
		return "NZ"
	case Other:
		return "sp"
	}
	return "unknown"
}

// ParseCategory converts a short tag back to its category.
// Tags are case sensitive.
func ParseCategory(tag string) (Category, error) {
	for _, c := range Categories {
		if c.String() == tag {
			return c, nil
		}
	}
	return Other, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
}

// base returns the first letter of the alphabet the category belongs to.
func (c Category) base() rune {
	switch c {
	case LowerFirstHalf, LowerSecondHalf:
		return 'a'
	case UpperFirstHalf, UpperSecondHalf:
		return 'A'
	}
	return 0
}
