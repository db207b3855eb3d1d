// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/impactops/notetaker-service/internal/domain"
	"github.com/impactops/notetaker-service/internal/domain/models"
	"github.com/impactops/notetaker-service/internal/infrastructure/messaging"
	"github.com/impactops/notetaker-service/internal/infrastructure/store"
	"github.com/impactops/notetaker-service/internal/logging"
)

// storeRepositories holds the NATS KV repositories for the service.
type storeRepositories struct {
	WebhookEvent *store.NatsWebhookEventRepository
	Session      *store.NatsSessionRepository
	Transcript   *store.NatsTranscriptRepository
	Task         *store.NatsTaskRepository
	Insight      *store.NatsInsightRepository
}

// setupNATS creates the NATS connection for the service. The connection
// participates in graceful shutdown: the closed handler releases the wait
// group, and an unexpected close takes the whole service down with it.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	gracefulCloseWG.Add(1)

	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(25*time.Second),
		nats.ConnectHandler(func(nc *nats.Conn) {
			slog.With("nats_url", nc.ConnectedUrlRedacted()).Info("NATS connection established")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, sub *nats.Subscription, err error) {
			if sub != nil {
				slog.With(logging.ErrKey, err, "subject", sub.Subject).Error("async NATS error")
				return
			}
			slog.With(logging.ErrKey, err).Error("async NATS error")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.With("nats_url", nc.Opts.Url).Info("NATS connection closed")
			gracefulCloseWG.Done()
			if ctx.Err() == nil {
				// Unexpected close: shut down the rest of the service too.
				done <- syscall.SIGTERM
			}
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, err
	}

	return natsConn, nil
}

// getKeyValueStores looks up (or creates on first run) the JetStream
// key-value buckets and wraps them in the entity repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (storeRepositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return storeRepositories{}, err
	}

	buckets := make(map[string]jetstream.KeyValue)
	for _, name := range []string{
		store.KVStoreNameWebhookEvents,
		store.KVStoreNameSessions,
		store.KVStoreNameTranscripts,
		store.KVStoreNameTasks,
		store.KVStoreNameInsights,
		store.KVStoreNameSolutions,
	} {
		kv, err := js.KeyValue(ctx, name)
		if errors.Is(err, jetstream.ErrBucketNotFound) {
			kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
				Bucket:  name,
				History: 1,
			})
		}
		if err != nil {
			slog.With(logging.ErrKey, err, "bucket", name).Error("error getting key-value bucket")
			return storeRepositories{}, err
		}
		buckets[name] = kv
	}

	return storeRepositories{
		WebhookEvent: store.NewNatsWebhookEventRepository(buckets[store.KVStoreNameWebhookEvents]),
		Session:      store.NewNatsSessionRepository(buckets[store.KVStoreNameSessions]),
		Transcript:   store.NewNatsTranscriptRepository(buckets[store.KVStoreNameTranscripts]),
		Task:         store.NewNatsTaskRepository(buckets[store.KVStoreNameTasks]),
		Insight:      store.NewNatsInsightRepository(buckets[store.KVStoreNameInsights], buckets[store.KVStoreNameSolutions]),
	}, nil
}

// createNatsSubcriptions creates the queue subscriptions that feed the
// webhook event handler. All consumers share one queue group so a scaled
// deployment processes each event once.
func createNatsSubcriptions(ctx context.Context, handler domain.MessageHandler, natsConn *nats.Conn) error {
	subjects := []string{
		models.NotetakerWebhookCreatedSubject,
		models.NotetakerWebhookUpdatedSubject,
		models.NotetakerWebhookMeetingStateSubject,
		models.NotetakerWebhookDeletedSubject,
		models.NotetakerWebhookMediaSubject,
	}

	for _, subject := range subjects {
		_, err := natsConn.QueueSubscribe(subject, models.NotetakerServiceQueue, func(msg *nats.Msg) {
			handler.HandleMessage(ctx, &messaging.NatsMsg{Msg: msg})
		})
		if err != nil {
			slog.With(logging.ErrKey, err, "subject", subject).Error("error creating NATS subscription")
			return err
		}
		slog.With("subject", subject, "queue", models.NotetakerServiceQueue).Debug("created NATS subscription")
	}

	return nil
}
