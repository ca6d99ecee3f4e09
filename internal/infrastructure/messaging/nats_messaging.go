// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package messaging implements the NATS message publishing layer.
package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/logging"
)

// INatsConn is the subset of the NATS connection used by the message builder.
type INatsConn interface {
	IsConnected() bool
	Publish(subj string, data []byte) error
}

// MessageBuilder builds messages and sends them to the NATS server.
type MessageBuilder struct {
	NatsConn INatsConn
}

var _ domain.MessageBuilder = (*MessageBuilder)(nil)

// NewMessageBuilder creates a new MessageBuilder.
func NewMessageBuilder(natsConn INatsConn) *MessageBuilder {
	return &MessageBuilder{
		NatsConn: natsConn,
	}
}

// sendMessage sends the message to the NATS server.
func (m *MessageBuilder) sendMessage(ctx context.Context, subject string, data []byte) error {
	err := m.NatsConn.Publish(subject, data)
	if err != nil {
		slog.ErrorContext(ctx, "error sending message to NATS", logging.ErrKey, err, "subject", subject)
		return err
	}
	slog.DebugContext(ctx, "sent message to NATS", "subject", subject)
	return nil
}

// sendJSONMessage marshals the payload and sends it on the subject.
func (m *MessageBuilder) sendJSONMessage(ctx context.Context, subject string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message into JSON", logging.ErrKey, err, "subject", subject)
		return err
	}
	return m.sendMessage(ctx, subject, data)
}

// SendMeetingCreated announces a newly provisioned meeting.
func (m *MessageBuilder) SendMeetingCreated(ctx context.Context, data models.MeetingCreatedMessage) error {
	return m.sendJSONMessage(ctx, models.MeetingCreatedSubject, data)
}

// SendMeetingUpdated announces a meeting status or recording change.
func (m *MessageBuilder) SendMeetingUpdated(ctx context.Context, data models.MeetingUpdatedMessage) error {
	return m.sendJSONMessage(ctx, models.MeetingUpdatedSubject, data)
}

// SendBookingUpdated announces a booking status change.
func (m *MessageBuilder) SendBookingUpdated(ctx context.Context, data models.BookingUpdatedMessage) error {
	return m.sendJSONMessage(ctx, models.BookingUpdatedSubject, data)
}

// SendNotificationScheduled announces a scheduled notification for the
// delivery worker.
func (m *MessageBuilder) SendNotificationScheduled(ctx context.Context, data *models.Notification) error {
	return m.sendJSONMessage(ctx, models.NotificationScheduledSubject, data)
}

// PublishZoomWebhookEvent publishes a verified Zoom webhook event to NATS for
// asynchronous processing by the reconciler.
func (m *MessageBuilder) PublishZoomWebhookEvent(ctx context.Context, subject string, message models.ZoomWebhookEventMessage) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling Zoom webhook event into JSON", logging.ErrKey, err, "subject", subject)
		return err
	}

	slog.DebugContext(ctx, "publishing Zoom webhook event to NATS",
		"subject", subject,
		"event_type", message.EventType,
		"event_ts", message.EventTS,
	)

	return m.sendMessage(ctx, subject, messageBytes)
}
