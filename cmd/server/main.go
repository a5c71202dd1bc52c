// Command server runs the record-keeping service: the durable event store,
// the optional redis version guard, the Kafka relay, and a small ops HTTP
// surface. Domain logic lives in the internal aggregate packages.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"registrar/internal/catalog"
	"registrar/internal/platform/config"
	"registrar/internal/platform/httpserver"
	"registrar/internal/platform/logger"
	platformpg "registrar/internal/platform/postgres"
	platformredis "registrar/internal/platform/redis"
	"registrar/pkg/platform/eventstore"
	"registrar/pkg/platform/eventstore/cache"
	"registrar/pkg/platform/eventstore/relay"
	pgstore "registrar/pkg/platform/eventstore/store/postgres"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	registry := catalog.NewRegistry()

	db, err := platformpg.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	durable := pgstore.New(db, registry, log)
	if err := durable.EnsureSchema(ctx); err != nil {
		return err
	}

	var store eventstore.Store = durable
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = cache.NewVersionGuard(durable, redisClient.Client, cache.WithLogger(log))
		log.Info("version guard enabled", "redis_url", cfg.RedisURL)
	}

	group, ctx := errgroup.WithContext(ctx)

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := relay.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.EnsureTopic(ctx, 1, 1); err != nil {
			return err
		}

		eventRelay := relay.New(durable, publisher,
			relay.WithInterval(cfg.RelayInterval),
			relay.WithLogger(log),
		)
		group.Go(func() error {
			log.Info("event relay started", "topic", cfg.KafkaTopic, "interval", cfg.RelayInterval.String())
			if err := eventRelay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		log.Info("event relay disabled: no kafka brokers configured")
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	// Read-only ops view of recent activity across all streams.
	router.Get("/events", func(w http.ResponseWriter, r *http.Request) {
		since := time.Now().UTC().Add(-time.Hour)
		if raw := r.URL.Query().Get("since"); raw != "" {
			parsed, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				http.Error(w, "since must be RFC 3339", http.StatusBadRequest)
				return
			}
			since = parsed
		}
		envelopes, err := store.GetEventsFromTimestamp(r.Context(), since)
		if err != nil {
			log.Error("event scan failed", "error", err)
			http.Error(w, "event scan failed", http.StatusInternalServerError)
			return
		}
		type entry struct {
			AggregateID   string    `json:"aggregate_id"`
			AggregateType string    `json:"aggregate_type"`
			Version       int64     `json:"version"`
			EventType     string    `json:"event_type"`
			OccurredAt    time.Time `json:"occurred_at"`
		}
		entries := make([]entry, 0, len(envelopes))
		for _, envelope := range envelopes {
			entries = append(entries, entry{
				AggregateID:   envelope.AggregateID.String(),
				AggregateType: envelope.AggregateType,
				Version:       envelope.Version,
				EventType:     envelope.Event.EventType(),
				OccurredAt:    envelope.Event.OccurredAt(),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entries)
	})

	server := httpserver.New(cfg.Addr, router)
	group.Go(func() error {
		log.Info("ops server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
