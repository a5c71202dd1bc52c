// Package degree holds the Degree aggregate: an academic degree and the
// records of who obtained it where.
package degree

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Degree.
const AggregateType = "degree"

const (
	TypeCreated  = "degree_created"
	TypeObtained = "degree_obtained"
)

// Created records a degree entering the registry.
type Created struct {
	eventstore.BaseEvent
	DegreeID domain.DegreeID `json:"degree_id"`
	Code     string          `json:"code"`
}

func (Created) EventType() string { return TypeCreated }

// Obtained records an academic obtaining the degree from a university.
type Obtained struct {
	eventstore.BaseEvent
	DegreeID     domain.DegreeID     `json:"degree_id"`
	AcademicID   domain.AcademicID   `json:"academic_id"`
	UniversityID domain.UniversityID `json:"university_id"`
}

func (Obtained) EventType() string { return TypeObtained }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeObtained, func() eventstore.Event { return &Obtained{} })
}

// Degree is the aggregate root for an academic degree. An academic obtains
// a given degree from at most one university.
type Degree struct {
	eventstore.AggregateRoot

	code        domain.DegreeCode
	obtainments map[domain.AcademicID]domain.UniversityID
}

// New registers a degree and raises Created.
func New(id domain.DegreeID, code domain.DegreeCode, now time.Time) (*Degree, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "degree_id is required")
	}
	if code.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "degree_code is required")
	}

	d := &Degree{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		code:          code,
		obtainments:   make(map[domain.AcademicID]domain.UniversityID),
	}
	d.Raise(&Created{
		BaseEvent: eventstore.NewBaseEventAt(now),
		DegreeID:  id,
		Code:      code.String(),
	})
	return d, nil
}

// DegreeID is the typed aggregate identity.
func (d *Degree) DegreeID() domain.DegreeID {
	return domain.DegreeID(d.ID())
}

// RecordObtainment records that an academic obtained the degree at a
// university. Obtaining the same degree twice, even elsewhere, fails.
func (d *Degree) RecordObtainment(academicID domain.AcademicID, universityID domain.UniversityID) error {
	if academicID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if universityID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "university_id is required")
	}
	if _, exists := d.obtainments[academicID]; exists {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic already obtained this degree")
	}
	d.obtainments[academicID] = universityID
	d.Raise(&Obtained{
		BaseEvent:    eventstore.NewBaseEvent(),
		DegreeID:     d.DegreeID(),
		AcademicID:   academicID,
		UniversityID: universityID,
	})
	return nil
}

func (d *Degree) Code() domain.DegreeCode { return d.code }

// ObtainedAt returns the university an academic obtained the degree from.
func (d *Degree) ObtainedAt(academicID domain.AcademicID) (domain.UniversityID, bool) {
	universityID, ok := d.obtainments[academicID]
	return universityID, ok
}

// Obtainments returns a copy of the obtainment records.
func (d *Degree) Obtainments() map[domain.AcademicID]domain.UniversityID {
	obtainments := make(map[domain.AcademicID]domain.UniversityID, len(d.obtainments))
	for academicID, universityID := range d.obtainments {
		obtainments[academicID] = universityID
	}
	return obtainments
}

// Rehydrate replays a decoded event stream into a Degree.
func Rehydrate(events []eventstore.Event) (*Degree, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "degree history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "degree history must start with "+TypeCreated)
	}

	code, err := domain.NewDegreeCode(created.Code)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt degree code in history")
	}

	d := &Degree{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.DegreeID), created.OccurredAt()),
		code:          code,
		obtainments:   make(map[domain.AcademicID]domain.UniversityID),
	}
	for _, event := range events[1:] {
		obtained, ok := event.(*Obtained)
		if !ok {
			return nil, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in degree history", event.EventType()))
		}
		d.obtainments[obtained.AcademicID] = obtained.UniversityID
		d.Touch(obtained.OccurredAt())
	}
	d.SetVersion(int64(len(events)))
	return d, nil
}
