// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// MeetingStatus is the lifecycle status of a provisioned meeting.
type MeetingStatus string

// Meeting statuses. Transitions are monotonic along
// scheduled -> started -> ended; cancelled is reachable from scheduled or
// started. Ended and cancelled are terminal.
const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusStarted   MeetingStatus = "started"
	MeetingStatusEnded     MeetingStatus = "ended"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// PlatformZoom is the only meeting provider currently supported.
const PlatformZoom = "zoom"

// Terminal reports whether no further transition is permitted out of the status.
func (s MeetingStatus) Terminal() bool {
	return s == MeetingStatusEnded || s == MeetingStatusCancelled
}

// CanTransitionTo reports whether the state machine permits moving from s to next.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	switch s {
	case MeetingStatusScheduled:
		return next == MeetingStatusStarted || next == MeetingStatusCancelled
	case MeetingStatusStarted:
		return next == MeetingStatusEnded || next == MeetingStatusCancelled
	default:
		// ended and cancelled are terminal
		return false
	}
}

// ParseMeetingStatus validates a raw status value.
func ParseMeetingStatus(raw string) (MeetingStatus, bool) {
	switch MeetingStatus(raw) {
	case MeetingStatusScheduled, MeetingStatusStarted, MeetingStatusEnded, MeetingStatusCancelled:
		return MeetingStatus(raw), true
	}
	return "", false
}

// Meeting is the key-value store representation of a provisioned video
// meeting bound to exactly one booking. The store is the source of truth for
// the meeting status; both the orchestrator and the webhook reconciler write
// through it with revision-checked updates.
type Meeting struct {
	UID                 string        `json:"uid"`
	BookingUID          string        `json:"booking_uid"`
	Platform            string        `json:"platform"`
	PlatformMeetingID   string        `json:"platform_meeting_id"`
	PlatformMeetingUUID string        `json:"platform_meeting_uuid,omitempty"`
	HostProviderUserID  string        `json:"host_provider_user_id,omitempty"`
	Topic               string        `json:"topic,omitempty"`
	JoinURL             string        `json:"join_url"`
	StartURL            string        `json:"start_url,omitempty"`
	Password            string        `json:"password,omitempty"`
	WaitingRoomEnabled  bool          `json:"waiting_room_enabled"`
	MuteOnEntry         bool          `json:"mute_on_entry"`
	AutoRecording       bool          `json:"auto_recording"`
	ScheduledStartTime  time.Time     `json:"scheduled_start_time"`
	ScheduledDuration   int           `json:"scheduled_duration_minutes"`
	Timezone            string        `json:"timezone,omitempty"`
	Status              MeetingStatus `json:"status"`
	ActualStartTime     *time.Time    `json:"actual_start_time,omitempty"`
	ActualEndTime       *time.Time    `json:"actual_end_time,omitempty"`
	ActualDuration      int           `json:"actual_duration_minutes,omitempty"`
	RecordingURL        string        `json:"recording_url,omitempty"`
	RecordingPassword   string        `json:"recording_password,omitempty"`
	CreatedAt           *time.Time    `json:"created_at,omitempty"`
	UpdatedAt           *time.Time    `json:"updated_at,omitempty"`
}

// ApplyTransition moves the meeting to the next status and stamps the actual
// start/end times. The caller is responsible for having validated the
// transition with CanTransitionTo.
func (m *Meeting) ApplyTransition(next MeetingStatus, now time.Time) {
	m.Status = next
	m.UpdatedAt = &now

	switch next {
	case MeetingStatusStarted:
		if m.ActualStartTime == nil {
			t := now
			m.ActualStartTime = &t
		}
	case MeetingStatusEnded:
		t := now
		m.ActualEndTime = &t
		if m.ActualStartTime != nil {
			m.ActualDuration = int(now.Sub(*m.ActualStartTime).Round(time.Minute) / time.Minute)
		}
	}
}
