package domain

import (
	"errors"
	"strconv"

	dErrors "registrar/pkg/domain-errors"
)

var (
	ErrInvalidBuildingNumber  = errors.New("building number must be positive")
	ErrInvalidRoomNumber      = errors.New("room number must be positive")
	ErrInvalidExtensionNumber = errors.New("extension number must be exactly four digits")
)

// BuildingNumber identifies a campus building on signage and floor plans.
type BuildingNumber struct {
	value int
}

func NewBuildingNumber(value int) (BuildingNumber, error) {
	if value <= 0 {
		return BuildingNumber{}, dErrors.Wrap(ErrInvalidBuildingNumber, dErrors.CodeValidation, "invalid building number")
	}
	return BuildingNumber{value: value}, nil
}

// MustBuildingNumber panics on invalid input; for tests and constants.
func MustBuildingNumber(value int) BuildingNumber {
	number, err := NewBuildingNumber(value)
	if err != nil {
		panic(err)
	}
	return number
}

func (n BuildingNumber) Value() int     { return n.value }
func (n BuildingNumber) IsZero() bool   { return n.value == 0 }
func (n BuildingNumber) String() string { return strconv.Itoa(n.value) }

// RoomNumber identifies a room within a building.
type RoomNumber struct {
	value int
}

func NewRoomNumber(value int) (RoomNumber, error) {
	if value <= 0 {
		return RoomNumber{}, dErrors.Wrap(ErrInvalidRoomNumber, dErrors.CodeValidation, "invalid room number")
	}
	return RoomNumber{value: value}, nil
}

// MustRoomNumber panics on invalid input; for tests and constants.
func MustRoomNumber(value int) RoomNumber {
	number, err := NewRoomNumber(value)
	if err != nil {
		panic(err)
	}
	return number
}

func (n RoomNumber) Value() int     { return n.value }
func (n RoomNumber) IsZero() bool   { return n.value == 0 }
func (n RoomNumber) String() string { return strconv.Itoa(n.value) }

// ExtensionNumber is a four-digit internal phone extension.
type ExtensionNumber struct {
	value int
}

func NewExtensionNumber(value int) (ExtensionNumber, error) {
	if value < 1000 || value > 9999 {
		return ExtensionNumber{}, dErrors.Wrap(ErrInvalidExtensionNumber, dErrors.CodeValidation, "invalid extension number")
	}
	return ExtensionNumber{value: value}, nil
}

// MustExtensionNumber panics on invalid input; for tests and constants.
func MustExtensionNumber(value int) ExtensionNumber {
	number, err := NewExtensionNumber(value)
	if err != nil {
		panic(err)
	}
	return number
}

func (n ExtensionNumber) Value() int     { return n.value }
func (n ExtensionNumber) IsZero() bool   { return n.value == 0 }
func (n ExtensionNumber) String() string { return strconv.Itoa(n.value) }
