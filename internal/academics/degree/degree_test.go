package degree_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/academics/degree"
	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
)

type DegreeSuite struct {
	suite.Suite
	now time.Time
}

func TestDegreeSuite(t *testing.T) {
	suite.Run(t, new(DegreeSuite))
}

func (s *DegreeSuite) SetupTest() {
	s.now = time.Date(2024, time.April, 18, 11, 0, 0, 0, time.UTC)
}

func (s *DegreeSuite) TestNew() {
	id := domain.NewDegreeID()
	d, err := degree.New(id, domain.MustDegreeCode("Ph.D."), s.now)
	s.Require().NoError(err)

	s.Equal(id, d.DegreeID())
	s.Equal("Ph.D.", d.Code().String())
	s.Empty(d.Obtainments())
}

func (s *DegreeSuite) TestRecordObtainment() {
	s.Run("records the obtainment once", func() {
		d, err := degree.New(domain.NewDegreeID(), domain.MustDegreeCode("MSc"), s.now)
		s.Require().NoError(err)
		d.ClearEvents()

		academicID := domain.NewAcademicID()
		universityID := domain.NewUniversityID()
		s.Require().NoError(d.RecordObtainment(academicID, universityID))

		got, ok := d.ObtainedAt(academicID)
		s.True(ok)
		s.Equal(universityID, got)
	})

	s.Run("one university per academic per degree", func() {
		d, err := degree.New(domain.NewDegreeID(), domain.MustDegreeCode("MSc"), s.now)
		s.Require().NoError(err)

		academicID := domain.NewAcademicID()
		first := domain.NewUniversityID()
		s.Require().NoError(d.RecordObtainment(academicID, first))

		err = d.RecordObtainment(academicID, domain.NewUniversityID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

		got, _ := d.ObtainedAt(academicID)
		s.Equal(first, got)
	})

	s.Run("different academics may obtain the same degree", func() {
		d, err := degree.New(domain.NewDegreeID(), domain.MustDegreeCode("MSc"), s.now)
		s.Require().NoError(err)

		s.Require().NoError(d.RecordObtainment(domain.NewAcademicID(), domain.NewUniversityID()))
		s.Require().NoError(d.RecordObtainment(domain.NewAcademicID(), domain.NewUniversityID()))
		s.Len(d.Obtainments(), 2)
	})
}

func (s *DegreeSuite) TestRehydrate() {
	id := domain.NewDegreeID()
	d, err := degree.New(id, domain.MustDegreeCode("Ph.D."), s.now)
	s.Require().NoError(err)

	academicID := domain.NewAcademicID()
	universityID := domain.NewUniversityID()
	s.Require().NoError(d.RecordObtainment(academicID, universityID))

	restored, err := degree.Rehydrate(d.Events())
	s.Require().NoError(err)
	s.Equal(id, restored.DegreeID())

	got, ok := restored.ObtainedAt(academicID)
	s.True(ok)
	s.Equal(universityID, got)
	s.Equal(int64(2), restored.Version())

	err = restored.RecordObtainment(academicID, domain.NewUniversityID())
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}
