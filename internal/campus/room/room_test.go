package room_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registrar/internal/campus/room"
	"registrar/pkg/domain"
	dErrors "registrar/pkg/domain-errors"
)

type RoomSuite struct {
	suite.Suite
	now time.Time
}

func TestRoomSuite(t *testing.T) {
	suite.Run(t, new(RoomSuite))
}

func (s *RoomSuite) SetupTest() {
	s.now = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
}

func (s *RoomSuite) TestNew() {
	s.Run("raises created with the owning building", func() {
		id := domain.NewRoomID()
		buildingID := domain.NewBuildingID()
		r, err := room.New(id, domain.MustRoomNumber(101), buildingID, s.now)
		s.Require().NoError(err)

		s.Equal(id, r.RoomID())
		s.Equal(101, r.Number().Value())
		s.Equal(buildingID, r.BuildingID())

		events := r.Events()
		s.Require().Len(events, 1)
		created, ok := events[0].(*room.Created)
		s.Require().True(ok)
		s.Equal(buildingID, created.BuildingID)
	})

	s.Run("rejects missing inputs", func() {
		_, err := room.New(domain.RoomID{}, domain.MustRoomNumber(101), domain.NewBuildingID(), s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = room.New(domain.NewRoomID(), domain.RoomNumber{}, domain.NewBuildingID(), s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		_, err = room.New(domain.NewRoomID(), domain.MustRoomNumber(101), domain.BuildingID{}, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *RoomSuite) TestRehydrate() {
	id := domain.NewRoomID()
	buildingID := domain.NewBuildingID()
	r, err := room.New(id, domain.MustRoomNumber(101), buildingID, s.now)
	s.Require().NoError(err)

	restored, err := room.Rehydrate(r.Events())
	s.Require().NoError(err)
	s.Equal(id, restored.RoomID())
	s.Equal(buildingID, restored.BuildingID())
	s.Equal(int64(1), restored.Version())
}
