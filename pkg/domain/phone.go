package domain

import (
	"errors"
	"regexp"

	dErrors "registrar/pkg/domain-errors"
)

var ErrInvalidPhoneNumber = errors.New("phone number must be 7 to 15 digits with an optional leading +")

var phoneNumberPattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// PhoneNumber is a home or office phone number in loose international form.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber validates the digit sequence.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if !phoneNumberPattern.MatchString(raw) {
		return PhoneNumber{}, dErrors.Wrap(ErrInvalidPhoneNumber, dErrors.CodeValidation, "invalid phone number")
	}
	return PhoneNumber{value: raw}, nil
}

// MustPhoneNumber panics on invalid input; for tests and constants.
func MustPhoneNumber(raw string) PhoneNumber {
	phone, err := NewPhoneNumber(raw)
	if err != nil {
		panic(err)
	}
	return phone
}

func (p PhoneNumber) String() string { return p.value }
func (p PhoneNumber) IsZero() bool   { return p.value == "" }
