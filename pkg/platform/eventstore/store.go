package eventstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"registrar/pkg/platform/sentinel"
)

// ErrVersionConflict is returned when an append's expected version does not
// match the stream's current version. Recoverable only by reloading the
// aggregate and retrying the whole operation; the store never retries
// internally.
var ErrVersionConflict = fmt.Errorf("expected version does not match stream version: %w", sentinel.ErrConflict)

// Store is the append-only event log keyed by aggregate identity.
//
// Per aggregate, appended events are strictly and contiguously
// version-ordered starting at 1; no gaps, no version reuse. Exclusive right
// to advance a stream is granted to whichever writer supplies the correct
// expected version at append time. Across aggregates the only ordering is
// the advisory occurrence timestamp.
type Store interface {
	// AppendEvents atomically appends events iff the highest stored version
	// for the aggregate equals expectedVersion (0 for a new aggregate).
	// On a mismatch it returns ErrVersionConflict and appends nothing.
	// A cancelled context leaves the store exactly as it was.
	AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, events []Event, expectedVersion int64) error

	// GetEvents returns the aggregate's decoded history in version order.
	// Records whose type name cannot be resolved are skipped with a warning.
	GetEvents(ctx context.Context, aggregateID uuid.UUID) ([]Event, error)

	// GetEventsFromVersion returns decoded events with version strictly
	// greater than fromVersion, in version order.
	GetEventsFromVersion(ctx context.Context, aggregateID uuid.UUID, fromVersion int64) ([]Event, error)

	// GetEventsFromTimestamp scans across aggregates for events that
	// occurred at or after the given time, ordered by timestamp then
	// version. For catch-up and backfill outside a single stream.
	GetEventsFromTimestamp(ctx context.Context, timestamp time.Time) ([]Envelope, error)
}

// OutboxRecord pairs a persisted record with its relay cursor position.
type OutboxRecord struct {
	RowID int64
	Record
}

// Outbox is the slice of the store the relay drains: appended records are
// delivered downstream at least once, oldest first, and flagged once sent.
type Outbox interface {
	UnpublishedRecords(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, rowIDs []int64) error
}
