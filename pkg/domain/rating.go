package domain

import (
	"errors"
	"strconv"

	dErrors "registrar/pkg/domain-errors"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 10")

// Rating scores a teaching relationship on a 1-10 scale. The rating belongs
// to the (academic, subject) teaching record, not to the subject itself.
type Rating struct {
	value int
}

// NewRating validates the 1-10 range.
func NewRating(value int) (Rating, error) {
	if value < 1 || value > 10 {
		return Rating{}, dErrors.Wrap(ErrInvalidRating, dErrors.CodeValidation, "invalid rating")
	}
	return Rating{value: value}, nil
}

// MustRating panics on invalid input; for tests and constants.
func MustRating(value int) Rating {
	rating, err := NewRating(value)
	if err != nil {
		panic(err)
	}
	return rating
}

func (r Rating) Value() int     { return r.value }
func (r Rating) IsZero() bool   { return r.value == 0 }
func (r Rating) String() string { return strconv.Itoa(r.value) }
