// Package eventstore provides the aggregate root base, the domain event
// contract, a closed event-type registry, and the append-only store protocol
// with optimistic concurrency control.
package eventstore

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of a state change that already happened.
// Concrete events embed BaseEvent, carry the changed fields as exported
// JSON-serializable fields, and report a stable type name via EventType.
type Event interface {
	// EventID is globally unique and independent of the stream version;
	// downstream consumers use it for idempotency and deduplication.
	EventID() uuid.UUID

	// EventType is the persisted type name resolved through the Registry.
	EventType() string

	// OccurredAt is the point in time the event logically occurred.
	OccurredAt() time.Time
}

// BaseEvent supplies identity and occurrence-time bookkeeping for concrete
// events. Embed it by value and populate it with NewBaseEvent at raise time.
type BaseEvent struct {
	ID         uuid.UUID `json:"event_id"`
	OccurredOn time.Time `json:"occurred_on"`
}

// NewBaseEvent assigns a fresh event identity and a UTC occurrence time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.New(), OccurredOn: time.Now().UTC()}
}

// NewBaseEventAt assigns a fresh event identity with an explicit occurrence
// time, used by factories that receive the creation instant from the caller.
func NewBaseEventAt(at time.Time) BaseEvent {
	return BaseEvent{ID: uuid.New(), OccurredOn: at.UTC()}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredOn }

// Record is the persisted shape of a single event, one row per event.
type Record struct {
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       []byte
	Version       int64
	OccurredAt    time.Time
	EventID       uuid.UUID
}

// Envelope pairs a decoded event with its stream coordinates. Cross-aggregate
// reads return envelopes because the aggregate identity is not recoverable
// from the event payload alone.
type Envelope struct {
	AggregateID   uuid.UUID
	AggregateType string
	Version       int64
	Event         Event
}
