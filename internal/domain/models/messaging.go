// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// MessageAction is the action that a message is performing.
type MessageAction string

const (
	// ActionCreated is the action for a created resource.
	ActionCreated MessageAction = "created"
	// ActionUpdated is the action for an updated resource.
	ActionUpdated MessageAction = "updated"
	// ActionDeleted is the action for a deleted resource.
	ActionDeleted MessageAction = "deleted"
)

// NATS subjects published by the service for downstream consumers
// (indexing, realtime UI feeds).
const (
	// MeetingCreatedSubject announces a freshly provisioned meeting.
	MeetingCreatedSubject = "disha.meetings-api.meeting_created"

	// MeetingUpdatedSubject announces a meeting status or recording change.
	MeetingUpdatedSubject = "disha.meetings-api.meeting_updated"

	// BookingUpdatedSubject announces a booking status change.
	BookingUpdatedSubject = "disha.meetings-api.booking_updated"

	// NotificationScheduledSubject announces a newly scheduled notification
	// for the delivery worker.
	NotificationScheduledSubject = "disha.notifications.scheduled"
)

// NATS subjects used to fan provider webhook events out to the reconciler.
const (
	ZoomWebhookMeetingStartedSubject           = "disha.webhook.zoom.meeting.started"
	ZoomWebhookMeetingEndedSubject             = "disha.webhook.zoom.meeting.ended"
	ZoomWebhookMeetingParticipantJoinedSubject = "disha.webhook.zoom.meeting.participant_joined"
	ZoomWebhookMeetingParticipantLeftSubject   = "disha.webhook.zoom.meeting.participant_left"
	ZoomWebhookRecordingCompletedSubject       = "disha.webhook.zoom.recording.completed"
)

// MeetingsAPIQueue is the queue group name for the meetings API NATS
// subscriptions, so that only one instance processes each webhook event.
const MeetingsAPIQueue = "disha.meetings-api.queue"

// ZoomWebhookEventMessage is the NATS representation of a provider webhook
// event, published after signature verification.
type ZoomWebhookEventMessage struct {
	EventType string         `json:"event_type"`
	EventTS   int64          `json:"event_ts"`
	Payload   map[string]any `json:"payload"`
}

// MeetingCreatedMessage announces a new meeting record.
type MeetingCreatedMessage struct {
	MeetingUID string   `json:"meeting_uid"`
	BookingUID string   `json:"booking_uid"`
	Meeting    *Meeting `json:"meeting,omitempty"`
}

// MeetingUpdatedMessage announces a meeting state change.
type MeetingUpdatedMessage struct {
	MeetingUID string        `json:"meeting_uid"`
	BookingUID string        `json:"booking_uid"`
	Status     MeetingStatus `json:"status"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BookingUpdatedMessage announces a booking state change.
type BookingUpdatedMessage struct {
	BookingUID string        `json:"booking_uid"`
	Status     BookingStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`
}
