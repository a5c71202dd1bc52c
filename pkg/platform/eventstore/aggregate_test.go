package eventstore_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"registrar/pkg/platform/eventstore"
)

type testEvent struct {
	eventstore.BaseEvent
	Value string `json:"value"`
}

func (testEvent) EventType() string { return "test_event" }

type AggregateRootSuite struct {
	suite.Suite
	now time.Time
}

func TestAggregateRootSuite(t *testing.T) {
	suite.Run(t, new(AggregateRootSuite))
}

func (s *AggregateRootSuite) SetupTest() {
	s.now = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func (s *AggregateRootSuite) TestNewAggregateRoot() {
	s.Run("establishes identity and timestamps", func() {
		id := uuid.New()
		root := eventstore.NewAggregateRoot(id, s.now)

		s.Equal(id, root.ID())
		s.Equal(s.now, root.CreatedAt())
		s.Equal(s.now, root.UpdatedAt())
		s.Equal(int64(0), root.Version())
		s.Empty(root.Events())
	})

	s.Run("panics on the nil uuid", func() {
		s.Panics(func() {
			eventstore.NewAggregateRoot(uuid.Nil, s.now)
		})
	})
}

func (s *AggregateRootSuite) TestRaise() {
	root := eventstore.NewAggregateRoot(uuid.New(), s.now)

	first := &testEvent{BaseEvent: eventstore.NewBaseEventAt(s.now.Add(time.Minute)), Value: "first"}
	second := &testEvent{BaseEvent: eventstore.NewBaseEventAt(s.now.Add(2 * time.Minute)), Value: "second"}
	root.Raise(first)
	root.Raise(second)

	events := root.Events()
	s.Require().Len(events, 2)
	s.Same(first, events[0])
	s.Same(second, events[1])
	s.Equal(second.OccurredAt(), root.UpdatedAt())
}

func (s *AggregateRootSuite) TestEventsReturnsACopy() {
	root := eventstore.NewAggregateRoot(uuid.New(), s.now)
	root.Raise(&testEvent{BaseEvent: eventstore.NewBaseEvent(), Value: "kept"})

	events := root.Events()
	events[0] = &testEvent{BaseEvent: eventstore.NewBaseEvent(), Value: "swapped"}

	kept, ok := root.Events()[0].(*testEvent)
	s.Require().True(ok)
	s.Equal("kept", kept.Value)
}

func (s *AggregateRootSuite) TestClearEvents() {
	root := eventstore.NewAggregateRoot(uuid.New(), s.now)
	root.Raise(&testEvent{BaseEvent: eventstore.NewBaseEvent(), Value: "pending"})

	root.ClearEvents()
	s.Empty(root.Events())

	// Idempotent.
	root.ClearEvents()
	s.Empty(root.Events())
}

func (s *AggregateRootSuite) TestVersionBookkeeping() {
	root := eventstore.NewAggregateRoot(uuid.New(), s.now)
	root.SetVersion(7)
	s.Equal(int64(7), root.Version())

	later := s.now.Add(time.Hour)
	root.Touch(later)
	s.Equal(later, root.UpdatedAt())
	s.Equal(s.now, root.CreatedAt())
}
