package chair_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/academics/chair"
	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
)

type ChairSuite struct {
	suite.Suite
	now time.Time
}

func TestChairSuite(t *testing.T) {
	suite.Run(t, new(ChairSuite))
}

func (s *ChairSuite) SetupTest() {
	s.now = time.Date(2024, time.February, 20, 14, 0, 0, 0, time.UTC)
}

func (s *ChairSuite) newChair() *chair.Chair {
	c, err := chair.New(domain.NewChairID(), domain.MustChairName("Distributed Systems"), s.now)
	s.Require().NoError(err)
	c.ClearEvents()
	return c
}

func (s *ChairSuite) TestNew() {
	id := domain.NewChairID()
	c, err := chair.New(id, domain.MustChairName("Distributed Systems"), s.now)
	s.Require().NoError(err)

	s.Equal(id, c.ChairID())
	s.Equal("Distributed Systems", c.Name().String())
	s.False(c.IsHeld())

	events := c.Events()
	s.Require().Len(events, 1)
	s.Equal(chair.TypeCreated, events[0].EventType())
}

func (s *ChairSuite) TestAssignToProfessor() {
	s.Run("assigns a free chair", func() {
		c := s.newChair()
		professorID := domain.NewAcademicID()
		s.Require().NoError(c.AssignToProfessor(professorID))
		s.True(c.IsHeld())
		s.Equal(professorID, *c.ProfessorID())
	})

	s.Run("a held chair is not replaced", func() {
		c := s.newChair()
		first := domain.NewAcademicID()
		s.Require().NoError(c.AssignToProfessor(first))

		err := c.AssignToProfessor(domain.NewAcademicID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Equal(first, *c.ProfessorID())
	})

	s.Run("can be reassigned after being vacated", func() {
		c := s.newChair()
		s.Require().NoError(c.AssignToProfessor(domain.NewAcademicID()))
		s.Require().NoError(c.RemoveProfessorAssignment())
		s.False(c.IsHeld())

		second := domain.NewAcademicID()
		s.Require().NoError(c.AssignToProfessor(second))
		s.Equal(second, *c.ProfessorID())
	})
}

func (s *ChairSuite) TestRemoveProfessorAssignment() {
	c := s.newChair()
	err := c.RemoveProfessorAssignment()
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *ChairSuite) TestRehydrate() {
	id := domain.NewChairID()
	c, err := chair.New(id, domain.MustChairName("Distributed Systems"), s.now)
	s.Require().NoError(err)

	s.Require().NoError(c.AssignToProfessor(domain.NewAcademicID()))
	s.Require().NoError(c.RemoveProfessorAssignment())
	holder := domain.NewAcademicID()
	s.Require().NoError(c.AssignToProfessor(holder))

	restored, err := chair.Rehydrate(c.Events())
	s.Require().NoError(err)
	s.Equal(id, restored.ChairID())
	s.True(restored.IsHeld())
	s.Equal(holder, *restored.ProfessorID())
	s.Equal(int64(4), restored.Version())
}
