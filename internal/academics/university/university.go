// Package university holds the University aggregate: a named institution
// referenced by degree obtainment records.
package university

import (
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for University.
const AggregateType = "university"

const TypeCreated = "university_created"

// Created records a university entering the registry.
type Created struct {
	eventstore.BaseEvent
	UniversityID domain.UniversityID `json:"university_id"`
	Name         string              `json:"name"`
}

func (Created) EventType() string { return TypeCreated }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
}

// University is the aggregate root for an institution. It carries identity
// and name only; degree obtainments reference it by ID.
type University struct {
	eventstore.AggregateRoot

	name domain.UniversityName
}

// New registers a university and raises Created.
func New(id domain.UniversityID, name domain.UniversityName, now time.Time) (*University, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "university_id is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "university_name is required")
	}

	u := &University{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		name:          name,
	}
	u.Raise(&Created{
		BaseEvent:    eventstore.NewBaseEventAt(now),
		UniversityID: id,
		Name:         name.String(),
	})
	return u, nil
}

// UniversityID is the typed aggregate identity.
func (u *University) UniversityID() domain.UniversityID {
	return domain.UniversityID(u.ID())
}

func (u *University) Name() domain.UniversityName { return u.name }

// Rehydrate replays a decoded event stream into a University.
func Rehydrate(events []eventstore.Event) (*University, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "university history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "university history must start with "+TypeCreated)
	}
	if len(events) > 1 {
		return nil, dErrors.New(dErrors.CodeInternal, "university history has trailing events")
	}

	name, err := domain.NewUniversityName(created.Name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt university name in history")
	}

	u := &University{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.UniversityID), created.OccurredAt()),
		name:          name,
	}
	u.SetVersion(int64(len(events)))
	return u, nil
}
