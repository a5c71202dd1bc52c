package department

import (
	"registrar/pkg/domain"
	"registrar/pkg/platform/eventstore"
)

const (
	TypeCreated           = "department_created"
	TypeMemberAdded       = "department_member_added"
	TypeHeadAssigned      = "department_head_assigned"
	TypeResearchBudgetSet = "department_research_budget_set"
	TypeTeachingBudgetSet = "department_teaching_budget_set"
	TypeChairAssigned     = "department_chair_assigned"
)

// Created records the founding of a department.
type Created struct {
	eventstore.BaseEvent
	DepartmentID domain.DepartmentID `json:"department_id"`
	Name         string              `json:"name"`
}

func (Created) EventType() string { return TypeCreated }

// MemberAdded records an academic joining the department.
type MemberAdded struct {
	eventstore.BaseEvent
	DepartmentID domain.DepartmentID `json:"department_id"`
	AcademicID   domain.AcademicID   `json:"academic_id"`
	Name         string              `json:"name"`
}

func (MemberAdded) EventType() string { return TypeMemberAdded }

// HeadAssigned records the appointment of a department head.
type HeadAssigned struct {
	eventstore.BaseEvent
	DepartmentID domain.DepartmentID `json:"department_id"`
	AcademicID   domain.AcademicID   `json:"academic_id"`
	HomePhone    string              `json:"home_phone"`
}

func (HeadAssigned) EventType() string { return TypeHeadAssigned }

// ResearchBudgetSet records the research budget in cents.
type ResearchBudgetSet struct {
	eventstore.BaseEvent
	DepartmentID domain.DepartmentID `json:"department_id"`
	AmountCents  int64               `json:"amount_cents"`
}

func (ResearchBudgetSet) EventType() string { return TypeResearchBudgetSet }

// TeachingBudgetSet records the teaching budget in cents.
type TeachingBudgetSet struct {
	eventstore.BaseEvent
	DepartmentID domain.DepartmentID `json:"department_id"`
	AmountCents  int64               `json:"amount_cents"`
}

func (TeachingBudgetSet) EventType() string { return TypeTeachingBudgetSet }

// ChairAssigned records the chair attached to the department.
type ChairAssigned struct {
	eventstore.BaseEvent
	DepartmentID domain.DepartmentID `json:"department_id"`
	ChairID      domain.ChairID      `json:"chair_id"`
}

func (ChairAssigned) EventType() string { return TypeChairAssigned }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeMemberAdded, func() eventstore.Event { return &MemberAdded{} })
	r.MustRegister(TypeHeadAssigned, func() eventstore.Event { return &HeadAssigned{} })
	r.MustRegister(TypeResearchBudgetSet, func() eventstore.Event { return &ResearchBudgetSet{} })
	r.MustRegister(TypeTeachingBudgetSet, func() eventstore.Event { return &TeachingBudgetSet{} })
	r.MustRegister(TypeChairAssigned, func() eventstore.Event { return &ChairAssigned{} })
}
