package domain

import (
	"errors"
	"strings"

	dErrors "registrar/pkg/domain-errors"
)

var (
	ErrInvalidDepartmentName = errors.New("department name must be non-empty and at most 128 characters")
	ErrInvalidChairName      = errors.New("chair name must be non-empty and at most 128 characters")
	ErrInvalidCommitteeName  = errors.New("committee name must be non-empty and at most 128 characters")
	ErrInvalidUniversityName = errors.New("university name must be non-empty and at most 128 characters")
)

func validateName(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > 128 {
		return "", dErrors.Wrap(invalid, dErrors.CodeValidation, "invalid name")
	}
	return trimmed, nil
}

// DepartmentName names a department; trimmed, non-empty, at most 128 chars.
type DepartmentName struct {
	value string
}

func NewDepartmentName(raw string) (DepartmentName, error) {
	trimmed, err := validateName(raw, ErrInvalidDepartmentName)
	if err != nil {
		return DepartmentName{}, err
	}
	return DepartmentName{value: trimmed}, nil
}

// MustDepartmentName panics on invalid input; for tests and constants.
func MustDepartmentName(raw string) DepartmentName {
	name, err := NewDepartmentName(raw)
	if err != nil {
		panic(err)
	}
	return name
}

func (n DepartmentName) String() string { return n.value }
func (n DepartmentName) IsZero() bool   { return n.value == "" }

// ChairName names an endowed or departmental chair.
type ChairName struct {
	value string
}

func NewChairName(raw string) (ChairName, error) {
	trimmed, err := validateName(raw, ErrInvalidChairName)
	if err != nil {
		return ChairName{}, err
	}
	return ChairName{value: trimmed}, nil
}

// MustChairName panics on invalid input; for tests and constants.
func MustChairName(raw string) ChairName {
	name, err := NewChairName(raw)
	if err != nil {
		panic(err)
	}
	return name
}

func (n ChairName) String() string { return n.value }
func (n ChairName) IsZero() bool   { return n.value == "" }

// CommitteeName names a standing committee.
type CommitteeName struct {
	value string
}

func NewCommitteeName(raw string) (CommitteeName, error) {
	trimmed, err := validateName(raw, ErrInvalidCommitteeName)
	if err != nil {
		return CommitteeName{}, err
	}
	return CommitteeName{value: trimmed}, nil
}

// MustCommitteeName panics on invalid input; for tests and constants.
func MustCommitteeName(raw string) CommitteeName {
	name, err := NewCommitteeName(raw)
	if err != nil {
		panic(err)
	}
	return name
}

func (n CommitteeName) String() string { return n.value }
func (n CommitteeName) IsZero() bool   { return n.value == "" }

// UniversityName names a degree-granting institution.
type UniversityName struct {
	value string
}

func NewUniversityName(raw string) (UniversityName, error) {
	trimmed, err := validateName(raw, ErrInvalidUniversityName)
	if err != nil {
		return UniversityName{}, err
	}
	return UniversityName{value: trimmed}, nil
}

// MustUniversityName panics on invalid input; for tests and constants.
func MustUniversityName(raw string) UniversityName {
	name, err := NewUniversityName(raw)
	if err != nil {
		panic(err)
	}
	return name
}

func (n UniversityName) String() string { return n.value }
func (n UniversityName) IsZero() bool   { return n.value == "" }
