package academic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/staff/academic"
	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/eventstore"
)

type AcademicSuite struct {
	suite.Suite
	now time.Time
}

func TestAcademicSuite(t *testing.T) {
	suite.Run(t, new(AcademicSuite))
}

func (s *AcademicSuite) SetupTest() {
	s.now = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
}

func (s *AcademicSuite) newProfessor() *academic.Academic {
	a, err := academic.New(
		domain.NewAcademicID(),
		domain.MustEmployeeNumber("AB1234"),
		domain.MustEmployeeName("Jane Doe"),
		domain.RankProfessor,
		s.now,
	)
	s.Require().NoError(err)
	a.ClearEvents()
	return a
}

func (s *AcademicSuite) newLecturer() *academic.Academic {
	a, err := academic.New(
		domain.NewAcademicID(),
		domain.MustEmployeeNumber("CD5678"),
		domain.MustEmployeeName("John Smith"),
		domain.RankLecturer,
		s.now,
	)
	s.Require().NoError(err)
	a.ClearEvents()
	return a
}

func (s *AcademicSuite) TestNew() {
	s.Run("raises created with the admission details", func() {
		id := domain.NewAcademicID()
		a, err := academic.New(id, domain.MustEmployeeNumber("AB1234"), domain.MustEmployeeName("Jane Doe"), domain.RankProfessor, s.now)
		s.Require().NoError(err)

		s.Equal(id, a.AcademicID())
		s.Equal("AB1234", a.Number().String())
		s.Equal("Jane Doe", a.Name().String())
		s.Equal(domain.RankProfessor, a.Rank())
		s.False(a.IsTenured())
		s.Equal(int64(0), a.Version())

		events := a.Events()
		s.Require().Len(events, 1)
		created, ok := events[0].(*academic.Created)
		s.Require().True(ok)
		s.Equal(academic.TypeCreated, created.EventType())
		s.Equal(id, created.AcademicID)
		s.Equal("AB1234", created.EmployeeNumber)
		s.Equal(s.now, created.OccurredAt())
	})

	s.Run("rejects nil identity", func() {
		_, err := academic.New(domain.AcademicID{}, domain.MustEmployeeNumber("AB1234"), domain.MustEmployeeName("Jane Doe"), domain.RankProfessor, s.now)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("rejects zero value objects", func() {
		_, err := academic.New(domain.NewAcademicID(), domain.EmployeeNumber{}, domain.MustEmployeeName("Jane Doe"), domain.RankProfessor, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = academic.New(domain.NewAcademicID(), domain.MustEmployeeNumber("AB1234"), domain.EmployeeName{}, domain.RankProfessor, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = academic.New(domain.NewAcademicID(), domain.MustEmployeeNumber("AB1234"), domain.MustEmployeeName("Jane Doe"), domain.Rank("dean"), s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *AcademicSuite) TestTenure() {
	s.Run("grants tenure once", func() {
		a := s.newProfessor()
		s.Require().NoError(a.MakeTenured())
		s.True(a.IsTenured())

		events := a.Events()
		s.Require().Len(events, 1)
		s.Equal(academic.TypeTenured, events[0].EventType())

		err := a.MakeTenured()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Len(a.Events(), 1)
	})

	s.Run("refuses tenure when a contract end date is set", func() {
		a := s.newProfessor()
		s.Require().NoError(a.SetContractEndDate(s.now.AddDate(2, 0, 0)))

		err := a.MakeTenured()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.False(a.IsTenured())
	})

	s.Run("refuses a contract end date for tenured staff", func() {
		a := s.newProfessor()
		s.Require().NoError(a.MakeTenured())

		err := a.SetContractEndDate(s.now.AddDate(2, 0, 0))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Nil(a.ContractEndDate())
	})

	s.Run("moves an existing contract end date", func() {
		a := s.newProfessor()
		first := s.now.AddDate(1, 0, 0)
		second := s.now.AddDate(3, 0, 0)

		s.Require().NoError(a.SetContractEndDate(first))
		s.Require().NoError(a.SetContractEndDate(second))

		s.Require().NotNil(a.ContractEndDate())
		s.Equal(second, *a.ContractEndDate())
		s.Len(a.Events(), 2)
	})
}

func (s *AcademicSuite) TestChangeRank() {
	s.Run("records old and new rank", func() {
		a := s.newLecturer()
		s.Require().NoError(a.ChangeRank(domain.RankSeniorLecturer))
		s.Equal(domain.RankSeniorLecturer, a.Rank())
		s.Equal(domain.AccessLevelElevated, a.AccessLevel())

		events := a.Events()
		s.Require().Len(events, 1)
		changed, ok := events[0].(*academic.RankChanged)
		s.Require().True(ok)
		s.Equal("lecturer", changed.OldRank)
		s.Equal("senior_lecturer", changed.NewRank)
	})

	s.Run("rejects a no-op rank change", func() {
		a := s.newLecturer()
		err := a.ChangeRank(domain.RankLecturer)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("chair holder cannot leave the professor rank", func() {
		a := s.newProfessor()
		s.Require().NoError(a.AssignChair(domain.NewChairID()))

		err := a.ChangeRank(domain.RankSeniorLecturer)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(domain.RankProfessor, a.Rank())
	})
}

func (s *AcademicSuite) TestAssignChair() {
	s.Run("professor takes a chair", func() {
		a := s.newProfessor()
		chairID := domain.NewChairID()
		s.Require().NoError(a.AssignChair(chairID))
		s.Require().NotNil(a.ChairID())
		s.Equal(chairID, *a.ChairID())
	})

	s.Run("only a professor can hold a chair", func() {
		a := s.newLecturer()
		err := a.AssignChair(domain.NewChairID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Nil(a.ChairID())
	})

	s.Run("a held chair is not replaced", func() {
		a := s.newProfessor()
		first := domain.NewChairID()
		s.Require().NoError(a.AssignChair(first))

		err := a.AssignChair(domain.NewChairID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(first, *a.ChairID())
	})
}

func (s *AcademicSuite) TestPlacements() {
	s.Run("department is assigned once", func() {
		a := s.newLecturer()
		deptID := domain.NewDepartmentID()
		s.Require().NoError(a.AssignToDepartment(deptID))
		s.Equal(deptID, *a.DepartmentID())

		err := a.AssignToDepartment(domain.NewDepartmentID())
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(deptID, *a.DepartmentID())
	})

	s.Run("room is assigned once", func() {
		a := s.newLecturer()
		roomID := domain.NewRoomID()
		s.Require().NoError(a.AssignRoom(roomID))

		err := a.AssignRoom(domain.NewRoomID())
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(roomID, *a.RoomID())
	})

	s.Run("extension is assigned once", func() {
		a := s.newLecturer()
		extID := domain.NewExtensionID()
		s.Require().NoError(a.AssignExtension(extID))

		err := a.AssignExtension(domain.NewExtensionID())
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(extID, *a.ExtensionID())
	})

	s.Run("home phone can be replaced", func() {
		a := s.newLecturer()
		s.Require().NoError(a.SetHomePhone(domain.MustPhoneNumber("+41791234567")))
		s.Require().NoError(a.SetHomePhone(domain.MustPhoneNumber("+41797654321")))
		s.Equal("+41797654321", a.HomePhone().String())
		s.Len(a.Events(), 2)
	})
}

func (s *AcademicSuite) TestSubjectsAndDegrees() {
	s.Run("duplicate subjects are rejected", func() {
		a := s.newLecturer()
		subjectID := domain.NewSubjectID()

		s.False(a.TeachesAnySubject())
		s.Require().NoError(a.AddSubject(subjectID))
		s.True(a.TeachesAnySubject())

		err := a.AddSubject(subjectID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Len(a.Subjects(), 1)
	})

	s.Run("duplicate degrees are rejected", func() {
		a := s.newLecturer()
		degreeID := domain.NewDegreeID()
		s.Require().NoError(a.AddDegree(degreeID))

		err := a.AddDegree(degreeID)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Len(a.Degrees(), 1)
	})
}

func (s *AcademicSuite) TestRehydrate() {
	s.Run("replays a full history", func() {
		id := domain.NewAcademicID()
		a, err := academic.New(id, domain.MustEmployeeNumber("AB1234"), domain.MustEmployeeName("Jane Doe"), domain.RankProfessor, s.now)
		s.Require().NoError(err)

		chairID := domain.NewChairID()
		deptID := domain.NewDepartmentID()
		subjectID := domain.NewSubjectID()
		s.Require().NoError(a.MakeTenured())
		s.Require().NoError(a.AssignChair(chairID))
		s.Require().NoError(a.AssignToDepartment(deptID))
		s.Require().NoError(a.AddSubject(subjectID))
		s.Require().NoError(a.SetHomePhone(domain.MustPhoneNumber("+41791234567")))

		restored, err := academic.Rehydrate(a.Events())
		s.Require().NoError(err)

		s.Equal(id, restored.AcademicID())
		s.Equal("AB1234", restored.Number().String())
		s.Equal(domain.RankProfessor, restored.Rank())
		s.True(restored.IsTenured())
		s.Equal(chairID, *restored.ChairID())
		s.Equal(deptID, *restored.DepartmentID())
		s.Equal([]domain.SubjectID{subjectID}, restored.Subjects())
		s.Equal("+41791234567", restored.HomePhone().String())
		s.Equal(int64(6), restored.Version())
		s.Empty(restored.Events())
	})

	s.Run("rejects an empty history", func() {
		_, err := academic.Rehydrate(nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("rejects a history that does not start with created", func() {
		_, err := academic.Rehydrate([]eventstore.Event{
			&academic.Tenured{BaseEvent: eventstore.NewBaseEvent(), AcademicID: domain.NewAcademicID()},
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("round-trips through the registry", func() {
		registry := eventstore.NewRegistry()
		academic.RegisterEvents(registry)

		a, err := academic.New(domain.NewAcademicID(), domain.MustEmployeeNumber("AB1234"), domain.MustEmployeeName("Jane Doe"), domain.RankSeniorLecturer, s.now)
		s.Require().NoError(err)
		s.Require().NoError(a.ChangeRank(domain.RankProfessor))

		events := a.Events()
		decoded := make([]eventstore.Event, 0, len(events))
		for i, event := range events {
			payload, err := eventstore.Encode(event)
			s.Require().NoError(err)
			out, err := registry.Decode(eventstore.Record{
				EventType: event.EventType(),
				Payload:   payload,
				Version:   int64(i + 1),
			})
			s.Require().NoError(err)
			decoded = append(decoded, out)
		}

		restored, err := academic.Rehydrate(decoded)
		s.Require().NoError(err)
		s.Equal(a.AcademicID(), restored.AcademicID())
		s.Equal(domain.RankProfessor, restored.Rank())
	})
}
