// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// ParticipantRole distinguishes the meeting host from the attendee.
type ParticipantRole string

const (
	ParticipantRoleHost     ParticipantRole = "host"
	ParticipantRoleAttendee ParticipantRole = "attendee"
)

// Attendance statuses observed from provider participant events.
const (
	AttendancePending = "pending"
	AttendanceJoined  = "joined"
	AttendanceLeft    = "left"
)

// Participant is one (meeting, person) attendance record. Two placeholder
// rows are written when the meeting is created (host = mentor, attendee =
// learner); the webhook reconciler fills in the observed fields as
// participant events arrive.
type Participant struct {
	UID                   string          `json:"uid"`
	MeetingUID            string          `json:"meeting_uid"`
	UserUID               string          `json:"user_uid"`
	DisplayName           string          `json:"display_name,omitempty"`
	Email                 string          `json:"email"`
	Role                  ParticipantRole `json:"role"`
	ProviderParticipantID string          `json:"provider_participant_id,omitempty"`
	JoinedAt              *time.Time      `json:"joined_at,omitempty"`
	LeftAt                *time.Time      `json:"left_at,omitempty"`
	// DurationMinutes is only computed when both join and leave were observed.
	DurationMinutes  *int   `json:"duration_minutes,omitempty"`
	AttendanceStatus string `json:"attendance_status,omitempty"`
}

// MarkJoined records a join observation from the provider.
func (p *Participant) MarkJoined(providerParticipantID string, at time.Time) {
	p.ProviderParticipantID = providerParticipantID
	t := at
	p.JoinedAt = &t
	p.AttendanceStatus = AttendanceJoined
}

// MarkLeft records a leave observation. Duration stays unset when the join
// was never observed; it is never negative.
func (p *Participant) MarkLeft(at time.Time) {
	t := at
	p.LeftAt = &t
	p.AttendanceStatus = AttendanceLeft

	if p.JoinedAt != nil && !at.Before(*p.JoinedAt) {
		minutes := int(at.Sub(*p.JoinedAt).Round(time.Minute) / time.Minute)
		p.DurationMinutes = &minutes
	}
}
