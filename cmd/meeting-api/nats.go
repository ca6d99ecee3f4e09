// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/infrastructure/store"
	"github.com/mosharaf6/Disha/internal/logging"
)

// natsShutdownTimeout bounds how long a NATS drain may take on shutdown.
const natsShutdownTimeout = 25 * time.Second

// keyValueStores holds the repositories backed by NATS JetStream KV buckets.
type keyValueStores struct {
	Meeting      *store.NatsMeetingRepository
	Booking      *store.NatsBookingRepository
	Participant  *store.NatsParticipantRepository
	Notification *store.NatsNotificationRepository
	Availability *store.NatsAvailabilityRepository
}

// setupNATS connects to the NATS server with reconnection support. A closed
// connection outside of shutdown is unrecoverable and signals the done channel.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.DrainTimeout(natsShutdownTimeout),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.With("nats_url", env.NatsURL).InfoContext(ctx, "connected to NATS server")
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.With(logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue).ErrorContext(ctx, "async NATS error")
			} else {
				slog.With(logging.ErrKey, err).ErrorContext(ctx, "async NATS error outside subscription")
			}
		}),
		nats.ClosedHandler(func(conn *nats.Conn) {
			if err := conn.LastError(); err != nil {
				slog.With(logging.ErrKey, err).ErrorContext(ctx, "NATS connection closed")
				select {
				case done <- os.Interrupt:
				default:
				}
			}
			gracefulCloseWG.Done()
		}),
	)
	if err != nil {
		return nil, err
	}

	// Balanced by the ClosedHandler once the connection fully closes.
	gracefulCloseWG.Add(1)

	return natsConn, nil
}

// getKeyValueStores provisions the JetStream KV buckets and wraps them in
// repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*keyValueStores, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]jetstream.KeyValue)
	for _, name := range []string{
		store.KVStoreNameMeetings,
		store.KVStoreNameBookings,
		store.KVStoreNameParticipants,
		store.KVStoreNameNotifications,
		store.KVStoreNameAvailability,
	} {
		kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:  name,
			History: 1,
		})
		if err != nil {
			slog.With(logging.ErrKey, err, "bucket", name).ErrorContext(ctx, "error creating key-value bucket")
			return nil, err
		}
		buckets[name] = kv
	}

	return &keyValueStores{
		Meeting:      store.NewNatsMeetingRepository(buckets[store.KVStoreNameMeetings]),
		Booking:      store.NewNatsBookingRepository(buckets[store.KVStoreNameBookings]),
		Participant:  store.NewNatsParticipantRepository(buckets[store.KVStoreNameParticipants]),
		Notification: store.NewNatsNotificationRepository(buckets[store.KVStoreNameNotifications]),
		Availability: store.NewNatsAvailabilityRepository(buckets[store.KVStoreNameAvailability]),
	}, nil
}

// natsMessage adapts *nats.Msg to the [domain.Message] interface.
type natsMessage struct {
	msg *nats.Msg
}

func (m *natsMessage) Subject() string           { return m.msg.Subject }
func (m *natsMessage) Data() []byte              { return m.msg.Data }
func (m *natsMessage) Respond(data []byte) error { return m.msg.Respond(data) }
func (m *natsMessage) HasReply() bool            { return m.msg.Reply != "" }

// createNatsSubscriptions subscribes the webhook reconciler to the verified
// Zoom event subjects. All instances share one queue group so each event is
// processed once.
func createNatsSubscriptions(ctx context.Context, handler domain.MessageHandler, natsConn *nats.Conn) error {
	subjects := []string{
		models.ZoomWebhookMeetingStartedSubject,
		models.ZoomWebhookMeetingEndedSubject,
		models.ZoomWebhookMeetingParticipantJoinedSubject,
		models.ZoomWebhookMeetingParticipantLeftSubject,
		models.ZoomWebhookRecordingCompletedSubject,
	}

	for _, subject := range subjects {
		subject := subject
		_, err := natsConn.QueueSubscribe(subject, models.MeetingsAPIQueue, func(msg *nats.Msg) {
			handler.HandleMessage(ctx, &natsMessage{msg: msg})
		})
		if err != nil {
			slog.With(logging.ErrKey, err, "subject", subject).ErrorContext(ctx, "error creating NATS subscription")
			return err
		}
		slog.With("subject", subject, "queue", models.MeetingsAPIQueue).DebugContext(ctx, "created NATS subscription")
	}

	return nil
}

// gracefulShutdown drains the HTTP server and the NATS connection, then waits
// for both to finish.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), natsShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	gracefulCloseWG.Done()

	if natsConn != nil && !natsConn.IsClosed() {
		// The ClosedHandler decrements the wait group once the connection is
		// fully closed, whether by a completed drain or a forced close.
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
			natsConn.Close()
		}
	}

	gracefulCloseWG.Wait()
	slog.Info("shutdown complete")
}
