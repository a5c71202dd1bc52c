package academic

import (
	"time"

	"registrar/pkg/domain"
	"registrar/pkg/platform/eventstore"
)

// Persisted event type names. Snake_case, stable: renaming one breaks
// replay of existing streams.
const (
	TypeCreated            = "academic_created"
	TypeTenured            = "academic_tenured"
	TypeContractEndDateSet = "academic_contract_end_date_set"
	TypeRankChanged        = "academic_rank_changed"
	TypeChairAssigned      = "academic_chair_assigned"
	TypeDepartmentAssigned = "academic_department_assigned"
	TypeRoomAssigned       = "academic_room_assigned"
	TypeExtensionAssigned  = "academic_extension_assigned"
	TypeHomePhoneSet       = "academic_home_phone_set"
	TypeSubjectAdded       = "academic_subject_added"
	TypeDegreeAdded        = "academic_degree_added"
)

// Created records the admission of a staff member to the registry.
type Created struct {
	eventstore.BaseEvent
	AcademicID     domain.AcademicID `json:"academic_id"`
	EmployeeNumber string            `json:"employee_number"`
	Name           string            `json:"name"`
	Rank           string            `json:"rank"`
}

func (Created) EventType() string { return TypeCreated }

// Tenured records the grant of tenure.
type Tenured struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
}

func (Tenured) EventType() string { return TypeTenured }

// ContractEndDateSet records a fixed-term contract end date.
type ContractEndDateSet struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
	EndDate    time.Time         `json:"end_date"`
}

func (ContractEndDateSet) EventType() string { return TypeContractEndDateSet }

// RankChanged records a promotion or demotion.
type RankChanged struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
	OldRank    string            `json:"old_rank"`
	NewRank    string            `json:"new_rank"`
}

func (RankChanged) EventType() string { return TypeRankChanged }

// ChairAssigned records that the academic took a chair.
type ChairAssigned struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
	ChairID    domain.ChairID    `json:"chair_id"`
}

func (ChairAssigned) EventType() string { return TypeChairAssigned }

// DepartmentAssigned records the academic's department placement.
type DepartmentAssigned struct {
	eventstore.BaseEvent
	AcademicID   domain.AcademicID   `json:"academic_id"`
	DepartmentID domain.DepartmentID `json:"department_id"`
}

func (DepartmentAssigned) EventType() string { return TypeDepartmentAssigned }

// RoomAssigned records the academic's office placement.
type RoomAssigned struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
	RoomID     domain.RoomID     `json:"room_id"`
}

func (RoomAssigned) EventType() string { return TypeRoomAssigned }

// ExtensionAssigned records the academic's phone extension claim.
type ExtensionAssigned struct {
	eventstore.BaseEvent
	AcademicID  domain.AcademicID  `json:"academic_id"`
	ExtensionID domain.ExtensionID `json:"extension_id"`
}

func (ExtensionAssigned) EventType() string { return TypeExtensionAssigned }

// HomePhoneSet records the academic's home phone number.
type HomePhoneSet struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
	Phone      string            `json:"phone"`
}

func (HomePhoneSet) EventType() string { return TypeHomePhoneSet }

// SubjectAdded records a new teaching assignment.
type SubjectAdded struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
	SubjectID  domain.SubjectID  `json:"subject_id"`
}

func (SubjectAdded) EventType() string { return TypeSubjectAdded }

// DegreeAdded records a degree held by the academic.
type DegreeAdded struct {
	eventstore.BaseEvent
	AcademicID domain.AcademicID `json:"academic_id"`
	DegreeID   domain.DegreeID   `json:"degree_id"`
}

func (DegreeAdded) EventType() string { return TypeDegreeAdded }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeTenured, func() eventstore.Event { return &Tenured{} })
	r.MustRegister(TypeContractEndDateSet, func() eventstore.Event { return &ContractEndDateSet{} })
	r.MustRegister(TypeRankChanged, func() eventstore.Event { return &RankChanged{} })
	r.MustRegister(TypeChairAssigned, func() eventstore.Event { return &ChairAssigned{} })
	r.MustRegister(TypeDepartmentAssigned, func() eventstore.Event { return &DepartmentAssigned{} })
	r.MustRegister(TypeRoomAssigned, func() eventstore.Event { return &RoomAssigned{} })
	r.MustRegister(TypeExtensionAssigned, func() eventstore.Event { return &ExtensionAssigned{} })
	r.MustRegister(TypeHomePhoneSet, func() eventstore.Event { return &HomePhoneSet{} })
	r.MustRegister(TypeSubjectAdded, func() eventstore.Event { return &SubjectAdded{} })
	r.MustRegister(TypeDegreeAdded, func() eventstore.Event { return &DegreeAdded{} })
}
