package eventstore

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot carries identity, audit timestamps, the persisted stream
// version, and the queue of events raised since the last flush. Embed it by
// value in aggregate structs.
//
// The root performs no I/O. Raised events accumulate until the persistence
// boundary appends them and calls ClearEvents.
type AggregateRoot struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	version   int64
	pending   []Event
}

// NewAggregateRoot establishes identity at creation time. A nil identity is
// a programmer error, not a business condition.
func NewAggregateRoot(id uuid.UUID, now time.Time) AggregateRoot {
	if id == uuid.Nil {
		panic("eventstore: aggregate id cannot be the nil uuid")
	}
	return AggregateRoot{id: id, createdAt: now, updatedAt: now}
}

func (a *AggregateRoot) ID() uuid.UUID        { return a.id }
func (a *AggregateRoot) CreatedAt() time.Time { return a.createdAt }
func (a *AggregateRoot) UpdatedAt() time.Time { return a.updatedAt }

// Version is the stream version this aggregate was loaded at. It is the
// expected version for the next append.
func (a *AggregateRoot) Version() int64 { return a.version }

// SetVersion records the persisted stream version after a load or a
// successful append.
func (a *AggregateRoot) SetVersion(version int64) { a.version = version }

// Raise queues an event and refreshes the modified timestamp. No external
// side effect.
func (a *AggregateRoot) Raise(event Event) {
	a.pending = append(a.pending, event)
	a.updatedAt = event.OccurredAt()
}

// Events returns the accumulated, unflushed events in raise order. The
// returned slice is a copy; mutating it does not affect the queue.
func (a *AggregateRoot) Events() []Event {
	events := make([]Event, len(a.pending))
	copy(events, a.pending)
	return events
}

// ClearEvents empties the queue. Called by the persistence boundary after a
// successful append; idempotent.
func (a *AggregateRoot) ClearEvents() {
	a.pending = nil
}

// Touch refreshes the modified timestamp without raising an event. Used by
// replay paths that mutate state from history instead of raising.
func (a *AggregateRoot) Touch(at time.Time) {
	a.updatedAt = at
}
