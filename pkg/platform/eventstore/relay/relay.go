// Package relay delivers appended event records to Kafka. It drains the
// store's outbox in row order, so per-aggregate version order is preserved
// on the wire, and keys messages by aggregate identity so a partition sees
// each stream in order. Delivery is at least once; consumers deduplicate by
// event id.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"registrar/pkg/platform/eventstore"
)

var (
	recordsRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrar_eventstore_relay_records_total",
		Help: "Total event records delivered to the broker",
	})
	relayFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrar_eventstore_relay_failures_total",
		Help: "Total delivery attempts that failed and will be retried",
	})
)

// Publisher delivers a single event record downstream.
type Publisher interface {
	Publish(ctx context.Context, record eventstore.OutboxRecord) error
}

// Message is the JSON envelope placed on the wire.
type Message struct {
	EventID       string          `json:"event_id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Version       int64           `json:"version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// KafkaPublisher publishes event envelopes to a single topic via franz-go.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects to the given seed brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(kgo.SeedBrokers(brokers...))
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

// EnsureTopic creates the topic if it does not already exist.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context, partitions int32, replication int16) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopic(ctx, partitions, replication, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %q: %w", p.topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", p.topic, resp.Err)
	}
	return nil
}

// Publish produces synchronously; the relay marks rows published only after
// the broker acknowledges.
func (p *KafkaPublisher) Publish(ctx context.Context, record eventstore.OutboxRecord) error {
	value, err := json.Marshal(Message{
		EventID:       record.EventID.String(),
		AggregateID:   record.AggregateID.String(),
		AggregateType: record.AggregateType,
		EventType:     record.EventType,
		Version:       record.Version,
		OccurredAt:    record.OccurredAt,
		Payload:       json.RawMessage(record.Payload),
	})
	if err != nil {
		return fmt.Errorf("marshal relay message: %w", err)
	}
	result := p.client.ProduceSync(ctx, &kgo.Record{
		Topic: p.topic,
		Key:   []byte(record.AggregateID.String()),
		Value: value,
	})
	return result.FirstErr()
}

// Close flushes and releases the underlying client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// Relay polls the outbox and pushes pending records to the publisher.
type Relay struct {
	outbox    eventstore.Outbox
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// Option configures a Relay.
type Option func(*Relay)

// WithInterval overrides the default one-second poll interval.
func WithInterval(interval time.Duration) Option {
	return func(r *Relay) {
		r.interval = interval
	}
}

// WithBatchSize overrides the default batch of 100 records per poll.
func WithBatchSize(size int) Option {
	return func(r *Relay) {
		r.batchSize = size
	}
}

// WithLogger sets the relay's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

// New constructs a relay draining outbox into publisher.
func New(outbox eventstore.Outbox, publisher Publisher, opts ...Option) *Relay {
	relay := &Relay{
		outbox:    outbox,
		publisher: publisher,
		logger:    slog.Default(),
		interval:  time.Second,
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(relay)
	}
	return relay
}

// Run polls until the context is cancelled. Delivery failures are logged and
// retried on the next tick; the relay never drops a record.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				relayFailures.Inc()
				r.logger.Error("relay drain failed", "error", err)
			}
		}
	}
}

func (r *Relay) drainOnce(ctx context.Context) error {
	records, err := r.outbox.UnpublishedRecords(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("load unpublished records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	published := make([]int64, 0, len(records))
	for _, record := range records {
		if err := r.publisher.Publish(ctx, record); err != nil {
			// Mark what made it out so far; the rest retries next tick.
			if markErr := r.outbox.MarkPublished(ctx, published); markErr != nil {
				return fmt.Errorf("mark published after partial drain: %w", markErr)
			}
			recordsRelayed.Add(float64(len(published)))
			return fmt.Errorf("publish record %d: %w", record.RowID, err)
		}
		published = append(published, record.RowID)
	}

	if err := r.outbox.MarkPublished(ctx, published); err != nil {
		return fmt.Errorf("mark records published: %w", err)
	}
	recordsRelayed.Add(float64(len(published)))
	return nil
}
