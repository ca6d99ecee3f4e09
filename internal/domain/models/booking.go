// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"time"
)

// BookingStatus is the lifecycle status of a session booking.
type BookingStatus string

// Booking statuses. Bookings are never deleted, only status-transitioned.
const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Duration categories offered for mentorship sessions, in minutes.
const (
	DurationCategoryQuarterHour = "15"
	DurationCategoryHalfHour    = "30"
	DurationCategoryFullHour    = "60"

	// DefaultDurationMinutes is used when the booking carries an unknown category.
	DefaultDurationMinutes = 60
)

// DurationMinutes maps a session duration category to minutes.
func DurationMinutes(category string) int {
	switch category {
	case DurationCategoryQuarterHour:
		return 15
	case DurationCategoryHalfHour:
		return 30
	case DurationCategoryFullHour:
		return 60
	default:
		return DefaultDurationMinutes
	}
}

// Booking is the key-value store representation of a confirmed session
// agreement between a learner and a mentor for a specific time slot.
// Learner and mentor contact details are denormalized snapshots taken at
// booking time; the identity provider owns the profiles themselves.
type Booking struct {
	UID                string        `json:"uid"`
	LearnerUID         string        `json:"learner_uid"`
	LearnerName        string        `json:"learner_name"`
	LearnerEmail       string        `json:"learner_email"`
	MentorUID          string        `json:"mentor_uid"`
	MentorName         string        `json:"mentor_name"`
	MentorEmail        string        `json:"mentor_email"`
	SlotUID            string        `json:"slot_uid,omitempty"`
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	Timezone           string        `json:"timezone,omitempty"`
	Duration           string        `json:"duration,omitempty"`
	Topic              string        `json:"topic,omitempty"`
	Message            string        `json:"message,omitempty"`
	MentorNotes        string        `json:"mentor_notes,omitempty"`
	Status             BookingStatus `json:"status"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CreatedAt          *time.Time    `json:"created_at,omitempty"`
	UpdatedAt          *time.Time    `json:"updated_at,omitempty"`
}

// IsParty reports whether the given principal is the booking's learner or mentor.
func (b *Booking) IsParty(userUID string) bool {
	return userUID != "" && (b.LearnerUID == userUID || b.MentorUID == userUID)
}

// IsMentor reports whether the given principal is the booking's mentor.
func (b *Booking) IsMentor(userUID string) bool {
	return userUID != "" && b.MentorUID == userUID
}

// MeetingAllowed reports whether a meeting may be provisioned for the booking.
// Only confirmed or paid bookings qualify.
func (b *Booking) MeetingAllowed() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusPaid
}
