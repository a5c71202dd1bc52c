// Package chair holds the Chair aggregate: a named professorial chair and
// its single holder.
package chair

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Chair.
const AggregateType = "chair"

const (
	TypeCreated           = "chair_created"
	TypeProfessorAssigned = "chair_professor_assigned"
	TypeProfessorRemoved  = "chair_professor_removed"
)

// Created records the endowment of a chair.
type Created struct {
	eventstore.BaseEvent
	ChairID domain.ChairID `json:"chair_id"`
	Name    string         `json:"name"`
}

func (Created) EventType() string { return TypeCreated }

// ProfessorAssigned records a professor taking the chair.
type ProfessorAssigned struct {
	eventstore.BaseEvent
	ChairID    domain.ChairID    `json:"chair_id"`
	AcademicID domain.AcademicID `json:"academic_id"`
}

func (ProfessorAssigned) EventType() string { return TypeProfessorAssigned }

// ProfessorRemoved records the chair being vacated.
type ProfessorRemoved struct {
	eventstore.BaseEvent
	ChairID domain.ChairID `json:"chair_id"`
}

func (ProfessorRemoved) EventType() string { return TypeProfessorRemoved }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeProfessorAssigned, func() eventstore.Event { return &ProfessorAssigned{} })
	r.MustRegister(TypeProfessorRemoved, func() eventstore.Event { return &ProfessorRemoved{} })
}

// Chair is the aggregate root for a professorial chair. A held chair must be
// vacated before another professor can take it; the Academic aggregate
// enforces the professor-rank requirement on its side.
type Chair struct {
	eventstore.AggregateRoot

	name        domain.ChairName
	professorID *domain.AcademicID
}

// New endows a chair and raises Created.
func New(id domain.ChairID, name domain.ChairName, now time.Time) (*Chair, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "chair_id is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "chair_name is required")
	}

	c := &Chair{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		name:          name,
	}
	c.Raise(&Created{
		BaseEvent: eventstore.NewBaseEventAt(now),
		ChairID:   id,
		Name:      name.String(),
	})
	return c, nil
}

// ChairID is the typed aggregate identity.
func (c *Chair) ChairID() domain.ChairID {
	return domain.ChairID(c.ID())
}

// AssignToProfessor records the professor holding the chair. A held chair
// is never replaced in place.
func (c *Chair) AssignToProfessor(professorID domain.AcademicID) error {
	if professorID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if c.professorID != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "chair is already held")
	}
	c.professorID = &professorID
	c.Raise(&ProfessorAssigned{
		BaseEvent:  eventstore.NewBaseEvent(),
		ChairID:    c.ChairID(),
		AcademicID: professorID,
	})
	return nil
}

// RemoveProfessorAssignment vacates the chair.
func (c *Chair) RemoveProfessorAssignment() error {
	if c.professorID == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "chair is not held")
	}
	c.professorID = nil
	c.Raise(&ProfessorRemoved{BaseEvent: eventstore.NewBaseEvent(), ChairID: c.ChairID()})
	return nil
}

func (c *Chair) Name() domain.ChairName { return c.name }

// IsHeld reports whether a professor currently holds the chair.
func (c *Chair) IsHeld() bool { return c.professorID != nil }

func (c *Chair) ProfessorID() *domain.AcademicID {
	if c.professorID == nil {
		return nil
	}
	id := *c.professorID
	return &id
}

// Rehydrate replays a decoded event stream into a Chair.
func Rehydrate(events []eventstore.Event) (*Chair, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "chair history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "chair history must start with "+TypeCreated)
	}

	name, err := domain.NewChairName(created.Name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt chair name in history")
	}

	c := &Chair{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.ChairID), created.OccurredAt()),
		name:          name,
	}
	for _, event := range events[1:] {
		switch e := event.(type) {
		case *ProfessorAssigned:
			id := e.AcademicID
			c.professorID = &id
		case *ProfessorRemoved:
			c.professorID = nil
		default:
			return nil, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in chair history", event.EventType()))
		}
		c.Touch(event.OccurredAt())
	}
	c.SetVersion(int64(len(events)))
	return c, nil
}
