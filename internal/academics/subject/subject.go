// Package subject holds the Subject aggregate: a taught course with its
// teaching records and teaching ratings.
package subject

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

// AggregateType is the stream type name for Subject.
const AggregateType = "subject"

const (
	TypeCreated       = "subject_created"
	TypeTeachingAdded = "subject_teaching_added"
	TypeTeachingRated = "subject_teaching_rated"
)

// Created records a subject entering the catalogue.
type Created struct {
	eventstore.BaseEvent
	SubjectID domain.SubjectID `json:"subject_id"`
	Code      string           `json:"code"`
}

func (Created) EventType() string { return TypeCreated }

// TeachingAdded records an academic taking up teaching of the subject.
type TeachingAdded struct {
	eventstore.BaseEvent
	SubjectID  domain.SubjectID  `json:"subject_id"`
	AcademicID domain.AcademicID `json:"academic_id"`
}

func (TeachingAdded) EventType() string { return TypeTeachingAdded }

// TeachingRated records a rating attached to an existing teaching record.
type TeachingRated struct {
	eventstore.BaseEvent
	SubjectID  domain.SubjectID  `json:"subject_id"`
	AcademicID domain.AcademicID `json:"academic_id"`
	Rating     int               `json:"rating"`
}

func (TeachingRated) EventType() string { return TypeTeachingRated }

// RegisterEvents binds this package's event shapes into the closed registry.
func RegisterEvents(r *eventstore.Registry) {
	r.MustRegister(TypeCreated, func() eventstore.Event { return &Created{} })
	r.MustRegister(TypeTeachingAdded, func() eventstore.Event { return &TeachingAdded{} })
	r.MustRegister(TypeTeachingRated, func() eventstore.Event { return &TeachingRated{} })
}

// Teaching is a single academic's teaching record for the subject, with the
// most recent rating if one was given.
type Teaching struct {
	AcademicID domain.AcademicID
	Rating     *domain.Rating
}

// Subject is the aggregate root for a catalogue subject.
type Subject struct {
	eventstore.AggregateRoot

	code      domain.SubjectCode
	teachings []Teaching
}

// New enters a subject into the catalogue and raises Created.
func New(id domain.SubjectID, code domain.SubjectCode, now time.Time) (*Subject, error) {
	if id.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "subject_id is required")
	}
	if code.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "subject_code is required")
	}

	s := &Subject{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(id), now),
		code:          code,
	}
	s.Raise(&Created{
		BaseEvent: eventstore.NewBaseEventAt(now),
		SubjectID: id,
		Code:      code.String(),
	})
	return s, nil
}

// SubjectID is the typed aggregate identity.
func (s *Subject) SubjectID() domain.SubjectID {
	return domain.SubjectID(s.ID())
}

// AddTeaching records that an academic teaches the subject; duplicates fail.
func (s *Subject) AddTeaching(academicID domain.AcademicID) error {
	if academicID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	for _, teaching := range s.teachings {
		if teaching.AcademicID == academicID {
			return dErrors.New(dErrors.CodeInvariantViolation, "academic already teaches this subject")
		}
	}
	s.teachings = append(s.teachings, Teaching{AcademicID: academicID})
	s.Raise(&TeachingAdded{
		BaseEvent:  eventstore.NewBaseEvent(),
		SubjectID:  s.SubjectID(),
		AcademicID: academicID,
	})
	return nil
}

// RateTeaching attaches a rating to an existing teaching record. Rating a
// teaching again replaces the previous rating.
func (s *Subject) RateTeaching(academicID domain.AcademicID, rating domain.Rating) error {
	if academicID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "academic_id is required")
	}
	if rating.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "rating is required")
	}
	idx := s.teachingIndex(academicID)
	if idx < 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "academic does not teach this subject")
	}
	s.teachings[idx].Rating = &rating
	s.Raise(&TeachingRated{
		BaseEvent:  eventstore.NewBaseEvent(),
		SubjectID:  s.SubjectID(),
		AcademicID: academicID,
		Rating:     rating.Value(),
	})
	return nil
}

func (s *Subject) Code() domain.SubjectCode { return s.code }

func (s *Subject) Teachings() []Teaching {
	teachings := make([]Teaching, len(s.teachings))
	copy(teachings, s.teachings)
	return teachings
}

// TeachingRating returns the current rating of an academic's teaching, nil
// when unrated, and reports whether the academic teaches the subject at all.
func (s *Subject) TeachingRating(academicID domain.AcademicID) (*domain.Rating, bool) {
	idx := s.teachingIndex(academicID)
	if idx < 0 {
		return nil, false
	}
	if s.teachings[idx].Rating == nil {
		return nil, true
	}
	rating := *s.teachings[idx].Rating
	return &rating, true
}

func (s *Subject) teachingIndex(academicID domain.AcademicID) int {
	for i, teaching := range s.teachings {
		if teaching.AcademicID == academicID {
			return i
		}
	}
	return -1
}

// Rehydrate replays a decoded event stream into a Subject.
func Rehydrate(events []eventstore.Event) (*Subject, error) {
	if len(events) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "subject history is empty")
	}
	created, ok := events[0].(*Created)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "subject history must start with "+TypeCreated)
	}

	code, err := domain.NewSubjectCode(created.Code)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt subject code in history")
	}

	s := &Subject{
		AggregateRoot: eventstore.NewAggregateRoot(uuid.UUID(created.SubjectID), created.OccurredAt()),
		code:          code,
	}
	for _, event := range events[1:] {
		switch e := event.(type) {
		case *TeachingAdded:
			s.teachings = append(s.teachings, Teaching{AcademicID: e.AcademicID})
		case *TeachingRated:
			rating, err := domain.NewRating(e.Rating)
			if err != nil {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt rating in history")
			}
			idx := s.teachingIndex(e.AcademicID)
			if idx < 0 {
				return nil, dErrors.New(dErrors.CodeInternal, "rating for an unknown teaching in history")
			}
			s.teachings[idx].Rating = &rating
		default:
			return nil, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("unexpected event %q in subject history", event.EventType()))
		}
		s.Touch(event.OccurredAt())
	}
	s.SetVersion(int64(len(events)))
	return s, nil
}
