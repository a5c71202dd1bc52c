package domain

import (
	"errors"
	"regexp"
	"strings"

	dErrors "registrar/pkg/domain-errors"
)

var (
	ErrInvalidEmployeeNumber = errors.New("employee number must be two uppercase letters followed by four digits")
	ErrInvalidEmployeeName   = errors.New("employee name must be non-empty and at most 128 characters")
)

var employeeNumberPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}$`)

// EmployeeNumber is a staff registry number in the fixed AB1234 format.
type EmployeeNumber struct {
	value string
}

// NewEmployeeNumber validates the two-letter four-digit format.
func NewEmployeeNumber(raw string) (EmployeeNumber, error) {
	if !employeeNumberPattern.MatchString(raw) {
		return EmployeeNumber{}, dErrors.Wrap(ErrInvalidEmployeeNumber, dErrors.CodeValidation, "invalid employee number")
	}
	return EmployeeNumber{value: raw}, nil
}

// MustEmployeeNumber panics on invalid input; for tests and constants.
func MustEmployeeNumber(raw string) EmployeeNumber {
	number, err := NewEmployeeNumber(raw)
	if err != nil {
		panic(err)
	}
	return number
}

func (n EmployeeNumber) String() string { return n.value }
func (n EmployeeNumber) IsZero() bool   { return n.value == "" }

// EmployeeName is a staff member's display name.
type EmployeeName struct {
	value string
}

// NewEmployeeName trims surrounding whitespace and validates length.
func NewEmployeeName(raw string) (EmployeeName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > 128 {
		return EmployeeName{}, dErrors.Wrap(ErrInvalidEmployeeName, dErrors.CodeValidation, "invalid employee name")
	}
	return EmployeeName{value: trimmed}, nil
}

// MustEmployeeName panics on invalid input; for tests and constants.
func MustEmployeeName(raw string) EmployeeName {
	name, err := NewEmployeeName(raw)
	if err != nil {
		panic(err)
	}
	return name
}

func (n EmployeeName) String() string { return n.value }
func (n EmployeeName) IsZero() bool   { return n.value == "" }

// EqualsFold reports case-insensitive name equality, used for uniqueness
// checks inside a department's member list.
func (n EmployeeName) EqualsFold(other EmployeeName) bool {
	return strings.EqualFold(n.value, other.value)
}
