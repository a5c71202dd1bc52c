// Package domain holds the shared domain vocabulary: typed aggregate
// identities and the self-validating value objects used across contexts.
//
// Aggregates reference each other exclusively through these typed IDs, never
// through object graphs, so every aggregate stays independently persistable.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "registrar/pkg/domain-errors"
)

// Typed identities prevent cross-aggregate ID mixups at compile time.
type (
	AcademicID   uuid.UUID
	DepartmentID uuid.UUID
	BuildingID   uuid.UUID
	RoomID       uuid.UUID
	ExtensionID  uuid.UUID
	ChairID      uuid.UUID
	CommitteeID  uuid.UUID
	DegreeID     uuid.UUID
	UniversityID uuid.UUID
	SubjectID    uuid.UUID
)

// parseID enforces the shared invariant: IDs must be valid, non-empty,
// non-nil UUIDs.
func parseID(raw string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed id")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil uuid")
	}
	return parsed, nil
}

func NewAcademicID() AcademicID   { return AcademicID(uuid.New()) }
func NewDepartmentID() DepartmentID { return DepartmentID(uuid.New()) }
func NewBuildingID() BuildingID   { return BuildingID(uuid.New()) }
func NewRoomID() RoomID           { return RoomID(uuid.New()) }
func NewExtensionID() ExtensionID { return ExtensionID(uuid.New()) }
func NewChairID() ChairID         { return ChairID(uuid.New()) }
func NewCommitteeID() CommitteeID { return CommitteeID(uuid.New()) }
func NewDegreeID() DegreeID       { return DegreeID(uuid.New()) }
func NewUniversityID() UniversityID { return UniversityID(uuid.New()) }
func NewSubjectID() SubjectID     { return SubjectID(uuid.New()) }

func ParseAcademicID(raw string) (AcademicID, error) {
	parsed, err := parseID(raw)
	return AcademicID(parsed), err
}

func ParseDepartmentID(raw string) (DepartmentID, error) {
	parsed, err := parseID(raw)
	return DepartmentID(parsed), err
}

func ParseBuildingID(raw string) (BuildingID, error) {
	parsed, err := parseID(raw)
	return BuildingID(parsed), err
}

func ParseRoomID(raw string) (RoomID, error) {
	parsed, err := parseID(raw)
	return RoomID(parsed), err
}

func ParseExtensionID(raw string) (ExtensionID, error) {
	parsed, err := parseID(raw)
	return ExtensionID(parsed), err
}

func ParseChairID(raw string) (ChairID, error) {
	parsed, err := parseID(raw)
	return ChairID(parsed), err
}

func ParseCommitteeID(raw string) (CommitteeID, error) {
	parsed, err := parseID(raw)
	return CommitteeID(parsed), err
}

func ParseDegreeID(raw string) (DegreeID, error) {
	parsed, err := parseID(raw)
	return DegreeID(parsed), err
}

func ParseUniversityID(raw string) (UniversityID, error) {
	parsed, err := parseID(raw)
	return UniversityID(parsed), err
}

func ParseSubjectID(raw string) (SubjectID, error) {
	parsed, err := parseID(raw)
	return SubjectID(parsed), err
}

func (id AcademicID) String() string   { return uuid.UUID(id).String() }
func (id DepartmentID) String() string { return uuid.UUID(id).String() }
func (id BuildingID) String() string   { return uuid.UUID(id).String() }
func (id RoomID) String() string       { return uuid.UUID(id).String() }
func (id ExtensionID) String() string  { return uuid.UUID(id).String() }
func (id ChairID) String() string      { return uuid.UUID(id).String() }
func (id CommitteeID) String() string  { return uuid.UUID(id).String() }
func (id DegreeID) String() string     { return uuid.UUID(id).String() }
func (id UniversityID) String() string { return uuid.UUID(id).String() }
func (id SubjectID) String() string    { return uuid.UUID(id).String() }

func (id AcademicID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id DepartmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id BuildingID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id RoomID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id ExtensionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ChairID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id CommitteeID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DegreeID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id UniversityID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SubjectID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
