// Package committee holds the Committee aggregate: a named faculty body
// whose membership is restricted to teaching staff.
package committee

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Committee.
const AggregateType = "committee"

const (
	TypeCreated     = "committee_created"
	TypeMemberAdded = "committee_member_added"
)

// Created records the constitution of a committee.
type Created struct {
	eventstore.BaseEvent
	CommitteeID domain.CommitteeID `json:"committee_id"`
	Name        string             `json:"name"`
}

func (Created) EventType() string { return TypeCreated }

// MemberAdded records an academic joining the committee.
type MemberAdded struct {
	eventstore.BaseEvent
	CommitteeID domain.CommitteeID `json:"committee_id"`
	AcademicID  domain.AcademicID  `json:"academic_id"`
}

func (MemberAdded) EventType() string { return TypeMemberAdded }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeMemberAdded, func() eventstore.Event { return &MemberAdded{} })
}

// Committee is the aggregate root for a faculty committee. Only academics
// teaching at least one subject may join; the caller supplies the teaching
// count because the committee holds identities, not academic records.
type Committee struct {
	eventstore.AggregateRoot

	name    domain.CommitteeName
	members []domain.AcademicID
}

// New constitutes a committee and raises Created.
func New(id domain.CommitteeID, name domain.CommitteeName, now time.Time) (*Committee, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "committee_id is required")
	}
	if name.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "committee_name is required")
	}

	c := &Committee{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		name:          name,
	}
	c.Raise(&Created{
		BaseEvent:   eventstore.NewBaseEventAt(now),
		CommitteeID: id,
		Name:        name.String(),
	})
	return c, nil
}

// CommitteeID is the typed aggregate identity.
func (c *Committee) CommitteeID() domain.CommitteeID {
	return domain.CommitteeID(c.ID())
}

// AddMember admits an academic who teaches at least one subject.
func (c *Committee) AddMember(academicID domain.AcademicID, subjectsTaught int) error {
	if academicID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if subjectsTaught < 1 {
		return dErrors.New(dErrors.CodeInvariantViolation, "committee members must teach at least one subject")
	}
	for _, member := range c.members {
		if member == academicID {
			return dErrors.New(dErrors.CodeInvariantViolation, "academic is already a committee member")
		}
	}
	c.members = append(c.members, academicID)
	c.Raise(&MemberAdded{
		BaseEvent:   eventstore.NewBaseEvent(),
		CommitteeID: c.CommitteeID(),
		AcademicID:  academicID,
	})
	return nil
}

func (c *Committee) Name() domain.CommitteeName { return c.name }

func (c *Committee) Members() []domain.AcademicID {
	members := make([]domain.AcademicID, len(c.members))
	copy(members, c.members)
	return members
}

// Rehydrate replays a decoded event stream into a Committee.
func Rehydrate(events []eventstore.Event) (*Committee, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "committee history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "committee history must start with "+TypeCreated)
	}

	name, err := domain.NewCommitteeName(created.Name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt committee name in history")
	}

	c := &Committee{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.CommitteeID), created.OccurredAt()),
		name:          name,
	}
	for _, event := range events[1:] {
		added, ok := event.(*MemberAdded)
		if !ok {
			return nil, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in committee history", event.EventType()))
		}
		c.members = append(c.members, added.AcademicID)
		c.Touch(added.OccurredAt())
	}
	c.SetVersion(int64(len(events)))
	return c, nil
}
