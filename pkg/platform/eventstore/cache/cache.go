// Package cache provides a Redis-backed optimistic-concurrency fast path in
// front of a durable event store.
//
// The guard caches the highest version it has seen per aggregate. Versions
// only grow, so a cached value is a floor on the true stream version: an
// append whose expected version is below the floor is a certain conflict and
// fails fast without touching the durable store. Everything else passes
// through; the wrapped store's append transaction remains the single
// correctness mechanism. Redis being down only disables the fast path.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"registrar/pkg/platform/eventstore"
)

var fastFailedConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Name: "registrar_eventstore_cache_fast_failed_conflicts_total",
	Help: "Total stale appends rejected by the cached version floor",
})

const versionKeyPrefix = "es:ver:"

// VersionGuard decorates a Store with a cached per-aggregate version floor.
type VersionGuard struct {
	inner  eventstore.Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a VersionGuard.
type Option func(*VersionGuard)

// WithTTL overrides the default one-hour floor expiry.
func WithTTL(ttl time.Duration) Option {
	return func(g *VersionGuard) {
		g.ttl = ttl
	}
}

// WithLogger sets the logger for cache-miss diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *VersionGuard) {
		g.logger = logger
	}
}

// NewVersionGuard wraps a store with the Redis version floor.
func NewVersionGuard(inner eventstore.Store, client *redis.Client, opts ...Option) *VersionGuard {
	guard := &VersionGuard{
		inner:  inner,
		client: client,
		ttl:    time.Hour,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(guard)
	}
	return guard
}

// AppendEvents fast-fails appends that are provably stale, then delegates.
// On a successful append the floor advances to the new stream version.
func (g *VersionGuard) AppendEvents(ctx context.Context, aggregateID uuid.UUID, aggregateType string, events []eventstore.Event, expectedVersion int64) error {
	if floor, ok := g.floor(ctx, aggregateID); ok && expectedVersion < floor {
		fastFailedConflicts.Inc()
		return eventstore.ErrVersionConflict
	}

	if err := g.inner.AppendEvents(ctx, aggregateID, aggregateType, events, expectedVersion); err != nil {
		return err
	}

	newVersion := expectedVersion + int64(len(events))
	key := versionKeyPrefix + aggregateID.String()
	if err := g.client.Set(ctx, key, newVersion, g.ttl).Err(); err != nil {
		g.logger.Debug("version floor update failed", "aggregate_id", aggregateID.String(), "error", err)
	}
	return nil
}

// GetEvents delegates to the wrapped store.
func (g *VersionGuard) GetEvents(ctx context.Context, aggregateID uuid.UUID) ([]eventstore.Event, error) {
	return g.inner.GetEvents(ctx, aggregateID)
}

// GetEventsFromVersion delegates to the wrapped store.
func (g *VersionGuard) GetEventsFromVersion(ctx context.Context, aggregateID uuid.UUID, fromVersion int64) ([]eventstore.Event, error) {
	return g.inner.GetEventsFromVersion(ctx, aggregateID, fromVersion)
}

// GetEventsFromTimestamp delegates to the wrapped store.
func (g *VersionGuard) GetEventsFromTimestamp(ctx context.Context, timestamp time.Time) ([]eventstore.Envelope, error) {
	return g.inner.GetEventsFromTimestamp(ctx, timestamp)
}

func (g *VersionGuard) floor(ctx context.Context, aggregateID uuid.UUID) (int64, bool) {
	key := versionKeyPrefix + aggregateID.String()
	floor, err := g.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		g.logger.Debug("version floor lookup failed", "aggregate_id", aggregateID.String(), "error", err)
		return 0, false
	}
	return floor, true
}
