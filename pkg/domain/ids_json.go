package domain

import "github.com/google/uuid"

// Text marshalling keeps IDs as canonical uuid strings inside persisted event
// payloads. Defined types do not inherit uuid.UUID's marshaller, so each ID
// type forwards explicitly.

func unmarshalID(text []byte) (uuid.UUID, error) {
	var parsed uuid.UUID
	err := parsed.UnmarshalText(text)
	return parsed, err
}

func (id AcademicID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id DepartmentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id BuildingID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id RoomID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id ExtensionID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id ChairID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id CommitteeID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id DegreeID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id UniversityID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id SubjectID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }

func (id *AcademicID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = AcademicID(parsed)
	return err
}

func (id *DepartmentID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = DepartmentID(parsed)
	return err
}

func (id *BuildingID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = BuildingID(parsed)
	return err
}

func (id *RoomID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = RoomID(parsed)
	return err
}

func (id *ExtensionID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = ExtensionID(parsed)
	return err
}

func (id *ChairID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = ChairID(parsed)
	return err
}

func (id *CommitteeID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = CommitteeID(parsed)
	return err
}

func (id *DegreeID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = DegreeID(parsed)
	return err
}

func (id *UniversityID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = UniversityID(parsed)
	return err
}

func (id *SubjectID) UnmarshalText(text []byte) error {
	parsed, err := unmarshalID(text)
	*id = SubjectID(parsed)
	return err
}
