// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"encoding/json"
	"fmt"
)

// Zoom webhook event types handled by the service.
const (
	ZoomEventMeetingStarted           = "meeting.started"
	ZoomEventMeetingEnded             = "meeting.ended"
	ZoomEventMeetingParticipantJoined = "meeting.participant_joined"
	ZoomEventMeetingParticipantLeft   = "meeting.participant_left"
	ZoomEventRecordingCompleted       = "recording.completed"

	// ZoomEventEndpointURLValidation is the endpoint ownership handshake Zoom
	// sends when the webhook URL is configured.
	ZoomEventEndpointURLValidation = "endpoint.url_validation"
)

// ZoomMeetingStartedPayload is the payload of a meeting.started event.
type ZoomMeetingStartedPayload struct {
	AccountID string                   `json:"account_id"`
	Object    ZoomMeetingStartedObject `json:"object"`
}

// ZoomMeetingStartedObject is the object of a meeting.started payload.
type ZoomMeetingStartedObject struct {
	ID        string `json:"id"`
	UUID      string `json:"uuid"`
	HostID    string `json:"host_id"`
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time"`
	Timezone  string `json:"timezone"`
	Duration  int    `json:"duration"`
}

// ZoomMeetingEndedPayload is the payload of a meeting.ended event.
type ZoomMeetingEndedPayload struct {
	AccountID string                `json:"account_id"`
	Object    ZoomMeetingEndedObject `json:"object"`
}

// ZoomMeetingEndedObject is the object of a meeting.ended payload.
type ZoomMeetingEndedObject struct {
	ID        string `json:"id"`
	UUID      string `json:"uuid"`
	HostID    string `json:"host_id"`
	Topic     string `json:"topic"`
	Type      int    `json:"type"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
	Duration  int    `json:"duration"`
}

// ZoomParticipant describes a participant in a participant_joined or
// participant_left event.
type ZoomParticipant struct {
	UserID            string `json:"user_id"`
	UserName          string `json:"user_name"`
	ID                string `json:"id"`
	ParticipantUserID string `json:"participant_user_id"`
	Email             string `json:"email"`
	JoinTime          string `json:"join_time,omitempty"`
	LeaveTime         string `json:"leave_time,omitempty"`
	LeaveReason       string `json:"leave_reason,omitempty"`
	ParticipantUUID   string `json:"participant_uuid"`
}

// ZoomParticipantJoinedPayload is the payload of a meeting.participant_joined event.
type ZoomParticipantJoinedPayload struct {
	AccountID string                      `json:"account_id"`
	Object    ZoomParticipantJoinedObject `json:"object"`
}

// ZoomParticipantJoinedObject is the object of a participant_joined payload.
type ZoomParticipantJoinedObject struct {
	ID          string          `json:"id"`
	UUID        string          `json:"uuid"`
	HostID      string          `json:"host_id"`
	Topic       string          `json:"topic"`
	Type        int             `json:"type"`
	StartTime   string          `json:"start_time"`
	Timezone    string          `json:"timezone"`
	Duration    int             `json:"duration"`
	Participant ZoomParticipant `json:"participant"`
}

// ZoomParticipantLeftPayload is the payload of a meeting.participant_left event.
type ZoomParticipantLeftPayload struct {
	AccountID string                    `json:"account_id"`
	Object    ZoomParticipantLeftObject `json:"object"`
}

// ZoomParticipantLeftObject is the object of a participant_left payload.
type ZoomParticipantLeftObject struct {
	ID          string          `json:"id"`
	UUID        string          `json:"uuid"`
	HostID      string          `json:"host_id"`
	Topic       string          `json:"topic"`
	Type        int             `json:"type"`
	StartTime   string          `json:"start_time"`
	Timezone    string          `json:"timezone"`
	Duration    int             `json:"duration"`
	Participant ZoomParticipant `json:"participant"`
}

// ZoomRecordingFile is a single recording artifact in a recording.completed event.
type ZoomRecordingFile struct {
	ID             string `json:"id"`
	MeetingID      string `json:"meeting_id"`
	RecordingStart string `json:"recording_start"`
	RecordingEnd   string `json:"recording_end"`
	FileType       string `json:"file_type"`
	FileSize       int64  `json:"file_size"`
	PlayURL        string `json:"play_url"`
	DownloadURL    string `json:"download_url"`
	Status         string `json:"status"`
	RecordingType  string `json:"recording_type"`
}

// ZoomRecordingCompletedPayload is the payload of a recording.completed event.
type ZoomRecordingCompletedPayload struct {
	AccountID string                       `json:"account_id"`
	Object    ZoomRecordingCompletedObject `json:"object"`
	// PlaybackPassword is the passcode required to view the recording, if
	// the account requires one. Zoom sends it as a sibling of object.
	PlaybackPassword string `json:"password,omitempty"`
}

// ZoomRecordingCompletedObject is the object of a recording.completed payload.
type ZoomRecordingCompletedObject struct {
	ID             int64               `json:"id"`
	UUID           string              `json:"uuid"`
	HostID         string              `json:"host_id"`
	Topic          string              `json:"topic"`
	Type           int                 `json:"type"`
	StartTime      string              `json:"start_time"`
	Timezone       string              `json:"timezone"`
	Duration       int                 `json:"duration"`
	ShareURL       string              `json:"share_url"`
	TotalSize      int64               `json:"total_size"`
	RecordingCount int                 `json:"recording_count"`
	RecordingFiles []ZoomRecordingFile `json:"recording_files"`
}

// convertPayload re-marshals a generic payload map into a typed payload struct.
func convertPayload[T any](payload map[string]any) (*T, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}
	var typed T
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, fmt.Errorf("unmarshaling payload: %w", err)
	}
	return &typed, nil
}

// ToMeetingStartedPayload converts the generic payload into a typed
// meeting.started payload.
func (m *ZoomWebhookEventMessage) ToMeetingStartedPayload() (*ZoomMeetingStartedPayload, error) {
	return convertPayload[ZoomMeetingStartedPayload](m.Payload)
}

// ToMeetingEndedPayload converts the generic payload into a typed
// meeting.ended payload.
func (m *ZoomWebhookEventMessage) ToMeetingEndedPayload() (*ZoomMeetingEndedPayload, error) {
	return convertPayload[ZoomMeetingEndedPayload](m.Payload)
}

// ToParticipantJoinedPayload converts the generic payload into a typed
// meeting.participant_joined payload.
func (m *ZoomWebhookEventMessage) ToParticipantJoinedPayload() (*ZoomParticipantJoinedPayload, error) {
	return convertPayload[ZoomParticipantJoinedPayload](m.Payload)
}

// ToParticipantLeftPayload converts the generic payload into a typed
// meeting.participant_left payload.
func (m *ZoomWebhookEventMessage) ToParticipantLeftPayload() (*ZoomParticipantLeftPayload, error) {
	return convertPayload[ZoomParticipantLeftPayload](m.Payload)
}

// ToRecordingCompletedPayload converts the generic payload into a typed
// recording.completed payload.
func (m *ZoomWebhookEventMessage) ToRecordingCompletedPayload() (*ZoomRecordingCompletedPayload, error) {
	return convertPayload[ZoomRecordingCompletedPayload](m.Payload)
}
