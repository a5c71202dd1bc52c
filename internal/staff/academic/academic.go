// Package academic holds the Academic aggregate: a staff member's registry
// record, rank, tenure status, and placements.
package academic

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Academic.
const AggregateType = "academic"

// Academic is the aggregate root for a member of the academic staff.
//
// Invariants:
//   - Tenure and a contract end date are mutually exclusive, guarded in
//     both directions. Neither can be reversed once set; removing tenure or
//     clearing the end date is deliberately unsupported.
//   - A chair can only be assigned to a professor, and a chair holder
//     cannot leave the professor rank.
//   - Department, room, extension and chair placements are single-valued
//     and never implicitly reassigned.
//   - All cross-aggregate references are identities, never object graphs.
type Academic struct {
	eventstore.AggregateRoot

	number       domain.EmployeeNumber
	name         domain.EmployeeName
	rank         domain.Rank
	tenured      bool
	contractEnd  *time.Time
	homePhone    *domain.PhoneNumber
	departmentID *domain.DepartmentID
	roomID       *domain.RoomID
	extensionID  *domain.ExtensionID
	chairID      *domain.ChairID
	subjects     []domain.SubjectID
	degrees      []domain.DegreeID
}

// New admits a staff member to the registry and raises Created.
func New(id domain.AcademicID, number domain.EmployeeNumber, name domain.EmployeeName, rank domain.Rank, now time.Time) (*Academic, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if number.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "employee_number is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "employee_name is required")
	}
	if !rank.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "rank is required")
	}

	a := &Academic{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		number:        number,
		name:          name,
		rank:          rank,
	}
	a.Raise(&Created{
		BaseEvent:      eventstore.NewBaseEventAt(now),
		AcademicID:     id,
		EmployeeNumber: number.String(),
		Name:           name.String(),
		Rank:           rank.String(),
	})
	return a, nil
}

// AcademicID is the typed aggregate identity.
func (a *Academic) AcademicID() domain.AcademicID {
	return domain.AcademicID(a.ID())
}

// MakeTenured grants tenure. Fails if a contract end date is set or tenure
// was already granted.
func (a *Academic) MakeTenured() error {
	if a.tenured {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic is already tenured")
	}
	if a.contractEnd != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic with a contract end date cannot be tenured")
	}
	a.tenured = true
	a.Raise(&Tenured{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID()})
	return nil
}

// SetContractEndDate fixes the contract term. Fails for tenured academics;
// an existing end date may be moved but not cleared.
func (a *Academic) SetContractEndDate(end time.Time) error {
	if end.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "contract end date is required")
	}
	if a.tenured {
		return dErrors.New(dErrors.CodeInvariantViolation, "tenured academic cannot have a contract end date")
	}
	endUTC := end.UTC()
	a.contractEnd = &endUTC
	a.Raise(&ContractEndDateSet{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), EndDate: endUTC})
	return nil
}

// ChangeRank moves the academic to a new rank.
func (a *Academic) ChangeRank(newRank domain.Rank) error {
	if !newRank.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "rank is required")
	}
	if newRank == a.rank {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic already holds this rank")
	}
	if a.chairID != nil && newRank != domain.RankProfessor {
		return dErrors.New(dErrors.CodeInvariantViolation, "chair holder must remain a professor")
	}
	oldRank := a.rank
	a.rank = newRank
	a.Raise(&RankChanged{
		BaseEvent:  eventstore.NewBaseEvent(),
		AcademicID: a.AcademicID(),
		OldRank:    oldRank.String(),
		NewRank:    newRank.String(),
	})
	return nil
}

// AssignChair records that this academic holds the chair. Requires the
// professor rank; a held chair is never implicitly replaced.
func (a *Academic) AssignChair(chairID domain.ChairID) error {
	if chairID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "chair_id is required")
	}
	if a.rank != domain.RankProfessor {
		return dErrors.New(dErrors.CodeInvariantViolation, "only a professor can hold a chair")
	}
	if a.chairID != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic already holds a chair")
	}
	a.chairID = &chairID
	a.Raise(&ChairAssigned{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), ChairID: chairID})
	return nil
}

// AssignToDepartment places the academic in a department.
func (a *Academic) AssignToDepartment(departmentID domain.DepartmentID) error {
	if departmentID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "department_id is required")
	}
	if a.departmentID != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic is already assigned to a department")
	}
	a.departmentID = &departmentID
	a.Raise(&DepartmentAssigned{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), DepartmentID: departmentID})
	return nil
}

// AssignRoom places the academic in an office room.
func (a *Academic) AssignRoom(roomID domain.RoomID) error {
	if roomID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "room_id is required")
	}
	if a.roomID != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic is already assigned to a room")
	}
	a.roomID = &roomID
	a.Raise(&RoomAssigned{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), RoomID: roomID})
	return nil
}

// AssignExtension records the academic's claim on a phone extension. The
// Extension aggregate enforces the single-owner rule on its side.
func (a *Academic) AssignExtension(extensionID domain.ExtensionID) error {
	if extensionID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "extension_id is required")
	}
	if a.extensionID != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic already has an extension")
	}
	a.extensionID = &extensionID
	a.Raise(&ExtensionAssigned{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), ExtensionID: extensionID})
	return nil
}

// SetHomePhone records or replaces the academic's home phone number.
func (a *Academic) SetHomePhone(phone domain.PhoneNumber) error {
	if phone.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "phone is required")
	}
	a.homePhone = &phone
	a.Raise(&HomePhoneSet{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), Phone: phone.String()})
	return nil
}

// AddSubject records a teaching assignment.
func (a *Academic) AddSubject(subjectID domain.SubjectID) error {
	if subjectID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "subject_id is required")
	}
	for _, existing := range a.subjects {
		if existing == subjectID {
			return dErrors.New(dErrors.CodeInvariantViolation, "academic already teaches this subject")
		}
	}
	a.subjects = append(a.subjects, subjectID)
	a.Raise(&SubjectAdded{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), SubjectID: subjectID})
	return nil
}

// AddDegree records a degree held by the academic. The Degree aggregate
// owns the one-university-per-degree rule.
func (a *Academic) AddDegree(degreeID domain.DegreeID) error {
	if degreeID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "degree_id is required")
	}
	for _, existing := range a.degrees {
		if existing == degreeID {
			return dErrors.New(dErrors.CodeInvariantViolation, "academic already holds this degree")
		}
	}
	a.degrees = append(a.degrees, degreeID)
	a.Raise(&DegreeAdded{BaseEvent: eventstore.NewBaseEvent(), AcademicID: a.AcademicID(), DegreeID: degreeID})
	return nil
}

func (a *Academic) Number() domain.EmployeeNumber { return a.number }
func (a *Academic) Name() domain.EmployeeName     { return a.name }
func (a *Academic) Rank() domain.Rank             { return a.rank }
func (a *Academic) IsTenured() bool               { return a.tenured }

// ContractEndDate returns the fixed contract end, nil for open-ended or
// tenured staff.
func (a *Academic) ContractEndDate() *time.Time {
	if a.contractEnd == nil {
		return nil
	}
	end := *a.contractEnd
	return &end
}

func (a *Academic) HomePhone() *domain.PhoneNumber {
	if a.homePhone == nil {
		return nil
	}
	phone := *a.homePhone
	return &phone
}

func (a *Academic) DepartmentID() *domain.DepartmentID {
	if a.departmentID == nil {
		return nil
	}
	id := *a.departmentID
	return &id
}

func (a *Academic) RoomID() *domain.RoomID {
	if a.roomID == nil {
		return nil
	}
	id := *a.roomID
	return &id
}

func (a *Academic) ExtensionID() *domain.ExtensionID {
	if a.extensionID == nil {
		return nil
	}
	id := *a.extensionID
	return &id
}

func (a *Academic) ChairID() *domain.ChairID {
	if a.chairID == nil {
		return nil
	}
	id := *a.chairID
	return &id
}

func (a *Academic) Subjects() []domain.SubjectID {
	subjects := make([]domain.SubjectID, len(a.subjects))
	copy(subjects, a.subjects)
	return subjects
}

func (a *Academic) Degrees() []domain.DegreeID {
	degrees := make([]domain.DegreeID, len(a.degrees))
	copy(degrees, a.degrees)
	return degrees
}

// AccessLevel is the capability level derived from the current rank.
func (a *Academic) AccessLevel() domain.AccessLevel { return a.rank.AccessLevel() }

// TeachesAnySubject reports whether the academic has at least one teaching
// assignment; committees admit only teaching staff.
func (a *Academic) TeachesAnySubject() bool { return len(a.subjects) > 0 }

// Rehydrate replays a decoded event stream into an Academic. The stream
// must start with Created; the resulting version equals the event count,
// valid by the store's contiguity guarantee.
func Rehydrate(events []eventstore.Event) (*Academic, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "academic history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "academic history must start with "+TypeCreated)
	}

	number, err := domain.NewEmployeeNumber(created.EmployeeNumber)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt employee number in history")
	}
	name, err := domain.NewEmployeeName(created.Name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt employee name in history")
	}
	rank, err := domain.ParseRank(created.Rank)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt rank in history")
	}

	a := &Academic{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.AcademicID), created.OccurredAt()),
		number:        number,
		name:          name,
		rank:          rank,
	}
	for _, event := range events[1:] {
		if err := a.apply(event); err != nil {
			return nil, err
		}
	}
	a.SetVersion(int64(len(events)))
	return a, nil
}

func (a *Academic) apply(event eventstore.Event) error {
	switch e := event.(type) {
	case *Tenured:
		a.tenured = true
	case *ContractEndDateSet:
		end := e.EndDate
		a.contractEnd = &end
	case *RankChanged:
		rank, err := domain.ParseRank(e.NewRank)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "corrupt rank in history")
		}
		a.rank = rank
	case *ChairAssigned:
		id := e.ChairID
		a.chairID = &id
	case *DepartmentAssigned:
		id := e.DepartmentID
		a.departmentID = &id
	case *RoomAssigned:
		id := e.RoomID
		a.roomID = &id
	case *ExtensionAssigned:
		id := e.ExtensionID
		a.extensionID = &id
	case *HomePhoneSet:
		phone, err := domain.NewPhoneNumber(e.Phone)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "corrupt phone number in history")
		}
		a.homePhone = &phone
	case *SubjectAdded:
		a.subjects = append(a.subjects, e.SubjectID)
	case *DegreeAdded:
		a.degrees = append(a.degrees, e.DegreeID)
	default:
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in academic history", event.EventType()))
	}
	a.Touch(event.OccurredAt())
	return nil
}
