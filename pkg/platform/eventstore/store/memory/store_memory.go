// Package memory provides the reference in-memory event store used by tests
// and local wiring. Semantics match the PostgreSQL store.
package memory

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/platform/eventstore"
)

// InMemory is a mutex-guarded append-only event log.
type InMemory struct {
	mu       sync.Mutex
	registry *eventstore.Registry
	logger   *slog.Logger
	streams  map[uuid.UUID][]eventstore.Record
	log      []eventstore.Record
}

// NewInMemory constructs an empty in-memory store decoding through the given
// closed registry.
func NewInMemory(registry *eventstore.Registry, logger *slog.Logger) *InMemory {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemory{
		registry: registry,
		logger:   logger,
		streams:  make(map[uuid.UUID][]eventstore.Record),
	}
}

// AppendEvents appends under the expected-version precondition. Encoding
// happens before any mutation so a failure leaves the store untouched.
func (s *InMemory) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, events []eventstore.Event, expectedVersion int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if aggregateID == uuid.Nil {
		return errors.New("eventstore: aggregate id cannot be the nil uuid")
	}
	if len(events) == 0 {
		return nil
	}

	records := make([]eventstore.Record, 0, len(events))
	for i, event := range events {
		payload, err := eventstore.Encode(event)
		if err != nil {
			return err
		}
		records = append(records, eventstore.Record{
			AggregateID:   aggregateID,
			AggregateType: aggregateType,
			EventType:     event.EventType(),
			Payload:       payload,
			Version:       expectedVersion + int64(i) + 1,
			OccurredAt:    event.OccurredAt(),
			EventID:       event.EventID(),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current := int64(len(s.streams[aggregateID])); current != expectedVersion {
		return eventstore.ErrVersionConflict
	}
	s.streams[aggregateID] = append(s.streams[aggregateID], records...)
	s.log = append(s.log, records...)
	return nil
}

// GetEvents returns the aggregate's decoded history in version order.
func (s *InMemory) GetEvents(ctx context.Context, aggregateID uuid.UUID) ([]eventstore.Event, error) {
	return s.GetEventsFromVersion(ctx, aggregateID, 0)
}

// GetEventsFromVersion returns decoded events with version > fromVersion.
func (s *InMemory) GetEventsFromVersion(ctx context.Context, aggregateID uuid.UUID, fromVersion int64) ([]eventstore.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	stream := make([]eventstore.Record, len(s.streams[aggregateID]))
	copy(stream, s.streams[aggregateID])
	s.mu.Unlock()

	events := make([]eventstore.Event, 0, len(stream))
	for _, record := range stream {
		if record.Version <= fromVersion {
			continue
		}
		event, err := s.registry.Decode(record)
		if err != nil {
			s.warnSkip(record, err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// GetEventsFromTimestamp scans all streams for events occurring at or after
// the given time, ordered by timestamp then version.
func (s *InMemory) GetEventsFromTimestamp(ctx context.Context, timestamp time.Time) ([]eventstore.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	matched := make([]eventstore.Record, 0)
	for _, record := range s.log {
		if !record.OccurredAt.Before(timestamp) {
			matched = append(matched, record)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].OccurredAt.Equal(matched[j].OccurredAt) {
			return matched[i].Version < matched[j].Version
		}
		return matched[i].OccurredAt.Before(matched[j].OccurredAt)
	})

	envelopes := make([]eventstore.Envelope, 0, len(matched))
	for _, record := range matched {
		event, err := s.registry.Decode(record)
		if err != nil {
			s.warnSkip(record, err)
			continue
		}
		envelopes = append(envelopes, eventstore.Envelope{
			AggregateID:   record.AggregateID,
			AggregateType: record.AggregateType,
			Version:       record.Version,
			Event:         event,
		})
	}
	return envelopes, nil
}

func (s *InMemory) warnSkip(record eventstore.Record, err error) {
	s.logger.Warn("skipping undecodable event record",
		"aggregate_id", record.AggregateID.String(),
		"event_type", record.EventType,
		"version", record.Version,
		"error", err,
	)
}
