// Package extension holds the Extension aggregate: an internal phone
// extension and its single assigned academic.
package extension

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Extension.
const AggregateType = "extension"

const (
	TypeCreated    = "extension_created"
	TypeAssigned   = "extension_assigned"
	TypeUnassigned = "extension_unassigned"
)

// Created records the provisioning of a phone extension.
type Created struct {
	eventstore.BaseEvent
	ExtensionID domain.ExtensionID `json:"extension_id"`
	Number      int                `json:"number"`
}

func (Created) EventType() string { return TypeCreated }

// Assigned records the extension's handover to an academic, with the access
// level derived from their rank at assignment time.
type Assigned struct {
	eventstore.BaseEvent
	ExtensionID domain.ExtensionID `json:"extension_id"`
	AcademicID  domain.AcademicID  `json:"academic_id"`
	AccessLevel string             `json:"access_level"`
}

func (Assigned) EventType() string { return TypeAssigned }

// Unassigned records the extension being freed.
type Unassigned struct {
	eventstore.BaseEvent
	ExtensionID domain.ExtensionID `json:"extension_id"`
}

func (Unassigned) EventType() string { return TypeUnassigned }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeAssigned, func() eventstore.Event { return &Assigned{} })
	r.MustRegister(TypeUnassigned, func() eventstore.Event { return &Unassigned{} })
}

// Extension is the aggregate root for a phone extension. An extension has
// at most one owner at a time; the provided access level is a snapshot of
// the owner's rank when assigned, not a live lookup.
type Extension struct {
	eventstore.AggregateRoot

	number      domain.ExtensionNumber
	academicID  *domain.AcademicID
	accessLevel *domain.AccessLevel
}

// New provisions an extension and raises Created.
func New(id domain.ExtensionID, number domain.ExtensionNumber, now time.Time) (*Extension, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "extension_id is required")
	}
	if number.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "extension_number is required")
	}

	e := &Extension{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		number:        number,
	}
	e.Raise(&Created{
		BaseEvent:   eventstore.NewBaseEventAt(now),
		ExtensionID: id,
		Number:      number.Value(),
	})
	return e, nil
}

// ExtensionID is the typed aggregate identity.
func (e *Extension) ExtensionID() domain.ExtensionID {
	return domain.ExtensionID(e.ID())
}

// AssignToAcademic hands the extension to an academic and snapshots the
// access level their rank grants. An assigned extension is never implicitly
// reassigned.
func (e *Extension) AssignToAcademic(academicID domain.AcademicID, rank domain.Rank) error {
	if academicID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if !rank.Valid() {
		return dErrors.New(dErrors.CodeInvalidInput, "rank is required")
	}
	if e.academicID != nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "extension is already assigned")
	}
	level := rank.AccessLevel()
	e.academicID = &academicID
	e.accessLevel = &level
	e.Raise(&Assigned{
		BaseEvent:   eventstore.NewBaseEvent(),
		ExtensionID: e.ExtensionID(),
		AcademicID:  academicID,
		AccessLevel: level.String(),
	})
	return nil
}

// RemoveAcademicAssignment frees the extension.
func (e *Extension) RemoveAcademicAssignment() error {
	if e.academicID == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "extension is not assigned")
	}
	e.academicID = nil
	e.accessLevel = nil
	e.Raise(&Unassigned{BaseEvent: eventstore.NewBaseEvent(), ExtensionID: e.ExtensionID()})
	return nil
}

// ProvidedAccessLevel returns the access level the extension grants. An
// unassigned extension provides none, reported as an invariant violation so
// callers can tell it apart from a missing extension.
func (e *Extension) ProvidedAccessLevel() (domain.AccessLevel, error) {
	if e.accessLevel == nil {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "unassigned extension provides no access level")
	}
	return *e.accessLevel, nil
}

func (e *Extension) Number() domain.ExtensionNumber { return e.number }

func (e *Extension) AcademicID() *domain.AcademicID {
	if e.academicID == nil {
		return nil
	}
	id := *e.academicID
	return &id
}

// IsAssigned reports whether the extension currently has an owner.
func (e *Extension) IsAssigned() bool { return e.academicID != nil }

// Rehydrate replays a decoded event stream into an Extension.
func Rehydrate(events []eventstore.Event) (*Extension, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "extension history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "extension history must start with "+TypeCreated)
	}

	number, err := domain.NewExtensionNumber(created.Number)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt extension number in history")
	}

	e := &Extension{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.ExtensionID), created.OccurredAt()),
		number:        number,
	}
	for _, event := range events[1:] {
		switch ev := event.(type) {
		case *Assigned:
			level := domain.AccessLevel(ev.AccessLevel)
			if !level.Valid() {
				return nil, dErrors.New(dErrors.CodeInternal, "corrupt access level in history")
			}
			id := ev.AcademicID
			e.academicID = &id
			e.accessLevel = &level
		case *Unassigned:
			e.academicID = nil
			e.accessLevel = nil
		default:
			return nil, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in extension history", event.EventType()))
		}
		e.Touch(event.OccurredAt())
	}
	e.SetVersion(int64(len(events)))
	return e, nil
}
