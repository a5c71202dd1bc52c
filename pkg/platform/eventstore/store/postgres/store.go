// Package postgres persists event streams in PostgreSQL. The optimistic
// append protocol is the only correctness mechanism: the expected-version
// check runs inside the append transaction and the UNIQUE (aggregate_id,
// version) constraint turns any interleaving writer into a version conflict.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"registrar/pkg/platform/eventstore"
)

var (
	appendDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "registrar_eventstore_append_duration_ms",
		Help:    "Latency of event stream appends in milliseconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
	})
	versionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrar_eventstore_version_conflicts_total",
		Help: "Total appends rejected by the expected-version check",
	})
	eventsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrar_eventstore_events_appended_total",
		Help: "Total events durably appended",
	})
	recordsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrar_eventstore_records_skipped_total",
		Help: "Total undecodable records skipped during stream reads",
	})
)

var tracer = otel.Tracer("registrar/pkg/platform/eventstore/store/postgres")

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id             BIGSERIAL PRIMARY KEY,
	aggregate_id   UUID        NOT NULL,
	aggregate_type TEXT        NOT NULL,
	event_type     TEXT        NOT NULL,
	payload        JSONB       NOT NULL,
	version        BIGINT      NOT NULL,
	occurred_at    TIMESTAMPTZ NOT NULL,
	event_id       UUID        NOT NULL UNIQUE,
	published      BOOLEAN     NOT NULL DEFAULT FALSE,
	CONSTRAINT events_aggregate_version_unique UNIQUE (aggregate_id, version)
);
CREATE INDEX IF NOT EXISTS events_occurred_at_idx ON events (occurred_at, version);
CREATE INDEX IF NOT EXISTS events_unpublished_idx ON events (id) WHERE NOT published;
`

// Store is the PostgreSQL-backed event store.
type Store struct {
	db       *sql.DB
	registry *eventstore.Registry
	logger   *slog.Logger
}

// New constructs a PostgreSQL event store decoding through the given closed
// registry.
func New(db *sql.DB, registry *eventstore.Registry, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, registry: registry, logger: logger}
}

// EnsureSchema creates the events table and indexes if absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure events schema: %w", err)
	}
	return nil
}

// AppendEvents appends all events iff the stream's highest version equals
// expectedVersion. The transaction guarantees all-or-nothing semantics for
// conflicts, failures, and cancellation alike.
func (s *Store) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, events []eventstore.Event, expectedVersion int64) (err error) {
	ctx, span := tracer.Start(ctx, "eventstore.AppendEvents", trace.WithAttributes(
		attribute.String("aggregate_id", aggregateID.String()),
		attribute.String("aggregate_type", aggregateType),
		attribute.Int64("expected_version", expectedVersion),
		attribute.Int("event_count", len(events)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		appendDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	if aggregateID == uuid.Nil {
		return errors.New("eventstore: aggregate id cannot be the nil uuid")
	}
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin append transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var current int64
	row := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM events WHERE aggregate_id = $1`, aggregateID)
	if err = row.Scan(&current); err != nil {
		return fmt.Errorf("read stream version: %w", err)
	}
	if current != expectedVersion {
		err = eventstore.ErrVersionConflict
		versionConflicts.Inc()
		return err
	}

	for i, event := range events {
		var payload []byte
		payload, err = eventstore.Encode(event)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO events (aggregate_id, aggregate_type, event_type, payload, version, occurred_at, event_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			aggregateID,
			aggregateType,
			event.EventType(),
			payload,
			expectedVersion+int64(i)+1,
			event.OccurredAt(),
			event.EventID(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				err = eventstore.ErrVersionConflict
				versionConflicts.Inc()
			}
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			err = eventstore.ErrVersionConflict
			versionConflicts.Inc()
			return err
		}
		return fmt.Errorf("commit append transaction: %w", err)
	}
	eventsAppended.Add(float64(len(events)))
	return nil
}

// GetEvents returns the aggregate's decoded history in version order.
func (s *Store) GetEvents(ctx context.Context, aggregateID uuid.UUID) ([]eventstore.Event, error) {
	return s.GetEventsFromVersion(ctx, aggregateID, 0)
}

// GetEventsFromVersion returns decoded events with version > fromVersion.
func (s *Store) GetEventsFromVersion(ctx context.Context, aggregateID uuid.UUID, fromVersion int64) ([]eventstore.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT aggregate_id, aggregate_type, event_type, payload, version, occurred_at, event_id
		FROM events
		WHERE aggregate_id = $1 AND version > $2
		ORDER BY version`,
		aggregateID, fromVersion)
	if err != nil {
		return nil, fmt.Errorf("query stream: %w", err)
	}
	defer rows.Close()

	var events []eventstore.Event
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		event, err := s.registry.Decode(record)
		if err != nil {
			s.warnSkip(record, err)
			continue
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stream: %w", err)
	}
	return events, nil
}

// GetEventsFromTimestamp scans across aggregates for events occurring at or
// after the given time, ordered by timestamp then version.
func (s *Store) GetEventsFromTimestamp(ctx context.Context, timestamp time.Time) ([]eventstore.Envelope, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT aggregate_id, aggregate_type, event_type, payload, version, occurred_at, event_id
		FROM events
		WHERE occurred_at >= $1
		ORDER BY occurred_at, version`,
		timestamp)
	if err != nil {
		return nil, fmt.Errorf("query events from timestamp: %w", err)
	}
	defer rows.Close()

	var envelopes []eventstore.Envelope
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events from timestamp: %w", err)
	}
	return envelopes, nil
}

// UnpublishedRecords returns up to limit records not yet relayed, oldest
// first. Used by the relay; raw records so undecodable events still reach
// downstream consumers.
func (s *Store) UnpublishedRecords(ctx context.Context, limit int) ([]eventstore.OutboxRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, aggregate_id, aggregate_type, event_type, payload, version, occurred_at, event_id
		FROM events
		WHERE NOT published
		ORDER BY id
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("query unpublished records: %w", err)
	}
	defer rows.Close()

	var records []eventstore.OutboxRecord
	for rows.Next() {
		var out eventstore.OutboxRecord
		if err := rows.Scan(
			&out.RowID,
			&out.AggregateID,
			&out.AggregateType,
			&out.EventType,
			&out.Payload,
			&out.Version,
			&out.OccurredAt,
			&out.EventID,
		); err != nil {
			return nil, fmt.Errorf("scan unpublished record: %w", err)
		}
		records = append(records, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unpublished records: %w", err)
	}
	return records, nil
}

// MarkPublished flags relayed records so they are not delivered again by
// this relay instance. Downstream dedup still keys on event_id.
func (s *Store) MarkPublished(ctx context.Context, rowIDs []int64) error {
	if len(rowIDs) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE events SET published = TRUE WHERE id = ANY($1)`,
		pq.Array(rowIDs))
	if err != nil {
		return fmt.Errorf("mark records published: %w", err)
	}
	return nil
}

func scanRecord(rows *sql.Rows) (eventstore.Record, error) {
	var record eventstore.Record
	if err := rows.Scan(
		&record.AggregateID,
		&record.AggregateType,
		&record.EventType,
		&record.Payload,
		&record.Version,
		&record.OccurredAt,
		&record.EventID,
	); err != nil {
		return eventstore.Record{}, fmt.Errorf("scan event record: %w", err)
	}
	return record, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (s *Store) warnSkip(record eventstore.Record, err error) {
	recordsSkipped.Inc()
	s.logger.Warn("skipping undecodable event record",
		"aggregate_id", record.AggregateID.String(),
		"event_type", record.EventType,
		"version", record.Version,
		"error", err,
	)
}
