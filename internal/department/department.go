// Package department holds the Department aggregate: membership, leadership
// and budgets of a university department.
package department

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Department.
const AggregateType = "department"

// Member is a department membership entry. The employee name is held locally
// so the name-uniqueness rule can be enforced without loading academics.
type Member struct {
	AcademicID domain.AcademicID
	Name       domain.EmployeeName
}

// Head is the appointed department head with their contact phone.
type Head struct {
	AcademicID domain.AcademicID
	HomePhone  domain.PhoneNumber
}

// Department is the aggregate root for a university department.
//
// Invariants:
//   - Member employee names are unique within the department,
//     case-insensitively.
//   - The head must already be a member; reassignment to another member is
//     allowed.
//   - Budgets are strictly positive.
//   - The chair reference is set once.
type Department struct {
	eventstore.AggregateRoot

	name           domain.DepartmentName
	members        []Member
	head           *Head
	researchBudget *domain.MoneyAmount
	teachingBudget *domain.MoneyAmount
	chairID        *domain.ChairID
}

// New founds a department and raises Created.
func New(id domain.DepartmentID, name domain.DepartmentName, now time.Time) (*Department, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "department_id is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "department_name is required")
	}

	d := &Department{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		name:          name,
	}
	d.Raise(&Created{
		BaseEvent:    eventstore.NewBaseEventAt(now),
		DepartmentID: id,
		Name:         name.String(),
	})
	return d, nil
}

// DepartmentID is the typed aggregate identity.
func (d *Department) DepartmentID() domain.DepartmentID {
	return domain.DepartmentID(d.ID())
}

// AddMember admits an academic. Both the academic identity and the employee
// name must be new to the department.
func (d *Department) AddMember(academicID domain.AcademicID, name domain.EmployeeName) error {
	if academicID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if name.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "employee_name is required")
	}
	for _, member := range d.members {
		if member.AcademicID == academicID {
			return dErrors.New(dErrors.CodeInvariantViolation, "academic is already a department member")
		}
		if member.Name.EqualsFold(name) {
			return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("department already has a member named %q", name.String()))
		}
	}
	d.members = append(d.members, Member{AcademicID: academicID, Name: name})
	d.Raise(&MemberAdded{
		BaseEvent:    eventstore.NewBaseEvent(),
		DepartmentID: d.DepartmentID(),
		AcademicID:   academicID,
		Name:         name.String(),
	})
	return nil
}

// AssignHead appoints a member as head. A non-member cannot lead; an
// existing head may be replaced by another member.
func (d *Department) AssignHead(professorID domain.AcademicID, homePhone domain.PhoneNumber) error {
	if professorID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if homePhone.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "home_phone is required")
	}
	if !d.IsMember(professorID) {
		return dErrors.New(dErrors.CodeInvariantViolation, "department head must be a department member")
	}
	d.head = &Head{AcademicID: professorID, HomePhone: homePhone}
	d.Raise(&HeadAssigned{
		BaseEvent:    eventstore.NewBaseEvent(),
		DepartmentID: d.DepartmentID(),
		AcademicID:   professorID,
		HomePhone:    homePhone.String(),
	})
	return nil
}

// SetResearchBudget fixes the research budget; the amount must be positive.
func (d *Department) SetResearchBudget(amount domain.MoneyAmount) error {
	if !amount.IsPositive() {
		return dErrors.New(dErrors.CodeInvariantViolation, "research budget must be positive")
	}
	d.researchBudget = &amount
	d.Raise(&ResearchBudgetSet{
		BaseEvent:    eventstore.NewBaseEvent(),
		DepartmentID: d.DepartmentID(),
		AmountCents:  amount.Cents(),
	})
	return nil
}

// SetTeachingBudget fixes the teaching budget; the amount must be positive.
func (d *Department) SetTeachingBudget(amount domain.MoneyAmount) error {
	if !amount.IsPositive() {
		return dErrors.New(dErrors.CodeInvariantViolation, "teaching budget must be positive")
	}
	d.teachingBudget = &amount
	d.Raise(&TeachingBudgetSet{
		BaseEvent:    eventstore.NewBaseEvent(),
		DepartmentID: d.DepartmentID(),
		AmountCents:  amount.Cents(),
	})
	return nil
}

// AssignChair attaches a chair to the department, once.
func (d *Department) AssignChair(chairID domain.ChairID) error {
	if chairID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "chair_id is required")
	}
	if d.chairID != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "department already has a chair")
	}
	d.chairID = &chairID
	d.Raise(&ChairAssigned{
		BaseEvent:    eventstore.NewBaseEvent(),
		DepartmentID: d.DepartmentID(),
		ChairID:      chairID,
	})
	return nil
}

func (d *Department) Name() domain.DepartmentName { return d.name }

// IsMember reports whether the academic belongs to the department.
func (d *Department) IsMember(academicID domain.AcademicID) bool {
	for _, member := range d.members {
		if member.AcademicID == academicID {
			return true
		}
	}
	return false
}

func (d *Department) Members() []Member {
	members := make([]Member, len(d.members))
	copy(members, d.members)
	return members
}

func (d *Department) Head() *Head {
	if d.head == nil {
		return nil
	}
	head := *d.head
	return &head
}

func (d *Department) ResearchBudget() *domain.MoneyAmount {
	if d.researchBudget == nil {
		return nil
	}
	amount := *d.researchBudget
	return &amount
}

func (d *Department) TeachingBudget() *domain.MoneyAmount {
	if d.teachingBudget == nil {
		return nil
	}
	amount := *d.teachingBudget
	return &amount
}

func (d *Department) ChairID() *domain.ChairID {
	if d.chairID == nil {
		return nil
	}
	id := *d.chairID
	return &id
}

// Rehydrate replays a decoded event stream into a Department.
func Rehydrate(events []eventstore.Event) (*Department, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "department history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "department history must start with "+TypeCreated)
	}

	name, err := domain.NewDepartmentName(created.Name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt department name in history")
	}

	d := &Department{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.DepartmentID), created.OccurredAt()),
		name:          name,
	}
	for _, event := range events[1:] {
		if err := d.apply(event); err != nil {
			return nil, err
		}
	}
	d.SetVersion(int64(len(events)))
	return d, nil
}

func (d *Department) apply(event eventstore.Event) error {
	switch e := event.(type) {
	case *MemberAdded:
		name, err := domain.NewEmployeeName(e.Name)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "corrupt member name in history")
		}
		d.members = append(d.members, Member{AcademicID: e.AcademicID, Name: name})
	case *HeadAssigned:
		phone, err := domain.NewPhoneNumber(e.HomePhone)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "corrupt head phone in history")
		}
		d.head = &Head{AcademicID: e.AcademicID, HomePhone: phone}
	case *ResearchBudgetSet:
		amount, err := domain.NewMoneyAmount(e.AmountCents)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "corrupt research budget in history")
		}
		d.researchBudget = &amount
	case *TeachingBudgetSet:
		amount, err := domain.NewMoneyAmount(e.AmountCents)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "corrupt teaching budget in history")
		}
		d.teachingBudget = &amount
	case *ChairAssigned:
		id := e.ChairID
		d.chairID = &id
	default:
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in department history", event.EventType()))
	}
	d.Touch(event.OccurredAt())
	return nil
}
