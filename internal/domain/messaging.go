// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// Message is the interface for a received message, wrapping the transport
// message so that handlers stay decoupled from the NATS client.
type Message interface {
	Subject() string
	Data() []byte
	Respond(data []byte) error
	HasReply() bool
}

// MessageHandler handles messages delivered on a subscription.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message)
	// HandlerReady reports whether the handler can process messages.
	HandlerReady() bool
}

// MeetingEventSender handles meeting lifecycle events.
type MeetingEventSender interface {
	SendMeetingCreated(ctx context.Context, data models.MeetingCreatedMessage) error
	SendMeetingUpdated(ctx context.Context, data models.MeetingUpdatedMessage) error
}

// BookingEventSender handles booking lifecycle events.
type BookingEventSender interface {
	SendBookingUpdated(ctx context.Context, data models.BookingUpdatedMessage) error
}

// NotificationSender announces scheduled notifications to the delivery worker.
type NotificationSender interface {
	SendNotificationScheduled(ctx context.Context, data *models.Notification) error
}

// WebhookEventSender handles webhook event publishing.
type WebhookEventSender interface {
	PublishZoomWebhookEvent(ctx context.Context, subject string, message models.ZoomWebhookEventMessage) error
}

// MessageBuilder composes all messaging capabilities.
type MessageBuilder interface {
	MeetingEventSender
	BookingEventSender
	NotificationSender
	WebhookEventSender
}
