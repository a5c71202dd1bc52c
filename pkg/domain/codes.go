package domain

import (
	"errors"
	"regexp"

	dErrors "registrar/pkg/domain-errors"
)

var (
	ErrInvalidSubjectCode = errors.New("subject code must be 2-4 uppercase letters followed by three digits")
	ErrInvalidDegreeCode  = errors.New("degree code must be 2-8 letters or dots")
)

var (
	subjectCodePattern = regexp.MustCompile(`^[A-Z]{2,4}[0-9]{3}$`)
	degreeCodePattern  = regexp.MustCompile(`^[A-Za-z.]{2,8}$`)
)

// SubjectCode is a catalog code such as CS101 or MATH201.
type SubjectCode struct {
	value string
}

func NewSubjectCode(raw string) (SubjectCode, error) {
	if !subjectCodePattern.MatchString(raw) {
		return SubjectCode{}, dErrors.Wrap(ErrInvalidSubjectCode, dErrors.CodeValidation, "invalid subject code")
	}
	return SubjectCode{value: raw}, nil
}

// MustSubjectCode panics on invalid input; for tests and constants.
func MustSubjectCode(raw string) SubjectCode {
	code, err := NewSubjectCode(raw)
	if err != nil {
		panic(err)
	}
	return code
}

func (c SubjectCode) String() string { return c.value }
func (c SubjectCode) IsZero() bool   { return c.value == "" }

// DegreeCode is a degree abbreviation such as PhD or M.Sc.
type DegreeCode struct {
	value string
}

func NewDegreeCode(raw string) (DegreeCode, error) {
	if !degreeCodePattern.MatchString(raw) {
		return DegreeCode{}, dErrors.Wrap(ErrInvalidDegreeCode, dErrors.CodeValidation, "invalid degree code")
	}
	return DegreeCode{value: raw}, nil
}

// MustDegreeCode panics on invalid input; for tests and constants.
func MustDegreeCode(raw string) DegreeCode {
	code, err := NewDegreeCode(raw)
	if err != nil {
		panic(err)
	}
	return code
}

func (c DegreeCode) String() string { return c.value }
func (c DegreeCode) IsZero() bool   { return c.value == "" }
