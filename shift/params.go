package shift

import (
	"fmt"
	"math"

	"github.com/NebulousLabs/fastrand"
)

const (
	alphabetLength = 26
	// maxRandomLimit is the largest limit for which the [-limit, limit] range fits in an int
	maxRandomLimit = (math.MaxInt - 1) / 2
)

// Params holds the two shift values which drive the substitution of every letter.
// Any pair of integers is valid, including zero and negative values.
// Decoding must use the exact same values which were used to encode the stream.
type Params struct {
	// Shift1 the first shift value (n)
	Shift1 int
	// Shift2 the second shift value (m)
	Shift2 int
}

// NewParams creates a new Params object
func NewParams(shift1, shift2 int) Params {
	return Params{Shift1: shift1, Shift2: shift2}
}

// RandomParams generates a random pair of shift values in the [-limit, limit] range.
// A non-positive limit defaults to the length of the alphabet and a limit above maxRandomLimit is capped.
func RandomParams(limit int) Params {
	if limit <= 0 {
		limit = alphabetLength
	}
	if limit > maxRandomLimit {
		limit = maxRandomLimit
	}
	span := 2*limit + 1
	return Params{
		Shift1: fastrand.Intn(span) - limit,
		Shift2: fastrand.Intn(span) - limit,
	}
}

// String returns the string representation of the shift values
func (p Params) String() string {
	return fmt.Sprintf("n=%d, m=%d", p.Shift1, p.Shift2)
}

// Each delta is reduced before multiplying, so that no combination of shift values can overflow.

func (p Params) product() int {
	return mod(mod(p.Shift1) * mod(p.Shift2))
}

func (p Params) sum() int {
	return mod(mod(p.Shift1) + mod(p.Shift2))
}

func (p Params) first() int {
	return mod(p.Shift1)
}

func (p Params) square() int {
	m := mod(p.Shift2)
	return mod(m * m)
}

// mod returns the non-negative remainder of x divided by the length of the alphabet
func mod(x int) int {
	r := x % alphabetLength
	if r < 0 {
		r += alphabetLength
	}
	return r
}
