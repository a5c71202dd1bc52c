package memory_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"registrar/pkg/platform/eventstore"
	"registrar/pkg/platform/eventstore/store/memory"
	"registrar/pkg/platform/sentinel"
)

type noteAdded struct {
	eventstore.BaseEvent
	Text string `json:"text"`
}

func (noteAdded) EventType() string { return "note_added" }

type InMemorySuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.InMemory
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.ctx = context.Background()
	registry := eventstore.NewRegistry()
	registry.MustRegister("note_added", func() eventstore.Event { return &noteAdded{} })
	s.store = memory.NewInMemory(registry, nil)
}

func (s *InMemorySuite) note(text string, at time.Time) *noteAdded {
	return &noteAdded{BaseEvent: eventstore.NewBaseEventAt(at), Text: text}
}

func (s *InMemorySuite) TestAppendAndGetRoundTrip() {
	id := uuid.New()
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	first := s.note("first", now)
	second := s.note("second", now.Add(time.Minute))
	s.Require().NoError(s.store.AppendEvents(s.ctx, id, "note", []eventstore.Event{first, second}, 0))

	events, err := s.store.GetEvents(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(events, 2)

	got, ok := events[0].(*noteAdded)
	s.Require().True(ok)
	s.Equal("first", got.Text)
	s.Equal(first.EventID(), got.EventID())
	s.True(first.OccurredAt().Equal(got.OccurredAt()))

	got, ok = events[1].(*noteAdded)
	s.Require().True(ok)
	s.Equal("second", got.Text)
}

func (s *InMemorySuite) TestExpectedVersionPrecondition() {
	id := uuid.New()
	now := time.Now().UTC()

	s.Require().NoError(s.store.AppendEvents(s.ctx, id, "note", []eventstore.Event{s.note("v1", now)}, 0))

	s.Run("stale expected version conflicts", func() {
		err := s.store.AppendEvents(s.ctx, id, "note", []eventstore.Event{s.note("again", now)}, 0)
		s.Require().ErrorIs(err, eventstore.ErrVersionConflict)
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("nothing is written on conflict", func() {
		events, err := s.store.GetEvents(s.ctx, id)
		s.Require().NoError(err)
		s.Len(events, 1)
	})

	s.Run("matching expected version appends", func() {
		s.Require().NoError(s.store.AppendEvents(s.ctx, id, "note", []eventstore.Event{s.note("v2", now)}, 1))
		events, err := s.store.GetEvents(s.ctx, id)
		s.Require().NoError(err)
		s.Len(events, 2)
	})
}

func (s *InMemorySuite) TestTwoWritersOneWinner() {
	id := uuid.New()
	now := time.Now().UTC()

	var wins, conflicts atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := s.store.AppendEvents(s.ctx, id, "note", []eventstore.Event{s.note("race", now)}, 0)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, eventstore.ErrVersionConflict):
				conflicts.Add(1)
			default:
				s.Fail("unexpected append error", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	s.Equal(int64(1), wins.Load())
	s.Equal(int64(1), conflicts.Load())

	events, err := s.store.GetEvents(s.ctx, id)
	s.Require().NoError(err)
	s.Len(events, 1)
}

func (s *InMemorySuite) TestGetEventsFromVersion() {
	id := uuid.New()
	now := time.Now().UTC()
	s.Require().NoError(s.store.AppendEvents(s.ctx, id, "note", []eventstore.Event{
		s.note("v1", now), s.note("v2", now), s.note("v3", now),
	}, 0))

	events, err := s.store.GetEventsFromVersion(s.ctx, id, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal("v2", events[0].(*noteAdded).Text)
	s.Equal("v3", events[1].(*noteAdded).Text)

	events, err = s.store.GetEventsFromVersion(s.ctx, id, 3)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *InMemorySuite) TestGetEventsFromTimestamp() {
	base := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	early := uuid.New()
	late := uuid.New()

	s.Require().NoError(s.store.AppendEvents(s.ctx, early, "note", []eventstore.Event{
		s.note("before", base.Add(-time.Hour)),
		s.note("at", base),
	}, 0))
	s.Require().NoError(s.store.AppendEvents(s.ctx, late, "note", []eventstore.Event{
		s.note("after", base.Add(time.Hour)),
	}, 0))

	envelopes, err := s.store.GetEventsFromTimestamp(s.ctx, base)
	s.Require().NoError(err)
	s.Require().Len(envelopes, 2)

	// Cut-off is inclusive; order is timestamp then version.
	s.Equal("at", envelopes[0].Event.(*noteAdded).Text)
	s.Equal(early, envelopes[0].AggregateID)
	s.Equal(int64(2), envelopes[0].Version)
	s.Equal("after", envelopes[1].Event.(*noteAdded).Text)
	s.Equal(late, envelopes[1].AggregateID)
}

func (s *InMemorySuite) TestUnknownEventTypesAreSkipped() {
	id := uuid.New()
	now := time.Now().UTC()

	registry := eventstore.NewRegistry()
	registry.MustRegister("note_added", func() eventstore.Event { return &noteAdded{} })
	open := memory.NewInMemory(registry, nil)

	s.Require().NoError(open.AppendEvents(s.ctx, id, "note", []eventstore.Event{s.note("kept", now)}, 0))

	// A store sharing the log but decoding through an empty registry skips
	// everything it cannot resolve instead of failing the read.
	closed := memory.NewInMemory(eventstore.NewRegistry(), nil)
	s.Require().NoError(closed.AppendEvents(s.ctx, id, "note", []eventstore.Event{s.note("skipped", now)}, 0))

	events, err := closed.GetEvents(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *InMemorySuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	id := uuid.New()
	err := s.store.AppendEvents(ctx, id, "note", []eventstore.Event{s.note("never", time.Now())}, 0)
	s.Require().ErrorIs(err, context.Canceled)

	events, err := s.store.GetEvents(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(events)

	_, err = s.store.GetEvents(ctx, id)
	s.Require().ErrorIs(err, context.Canceled)
}

func (s *InMemorySuite) TestEmptyAppendIsANoOp() {
	id := uuid.New()
	s.Require().NoError(s.store.AppendEvents(s.ctx, id, "note", nil, 0))

	events, err := s.store.GetEvents(s.ctx, id)
	s.Require().NoError(err)
	s.Empty(events)
}
