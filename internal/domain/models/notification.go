// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import (
	"fmt"
	"time"
)

// Notification types scheduled by the meeting lifecycle. Delivery mechanics
// live outside this service; only the schedule is owned here.
const (
	NotificationTypeBookingConfirmation = "booking_confirmation"
	NotificationTypeMeetingReminder     = "meeting_reminder"
	NotificationTypeMeetingCancelled    = "meeting_cancelled"
)

// Reminder lead times before the scheduled session start.
const (
	ReminderLeadDay  = 24 * time.Hour
	ReminderLeadHour = time.Hour
)

// Notification is a scheduled message tied to a booking and a recipient.
type Notification struct {
	UID          string     `json:"uid"`
	BookingUID   string     `json:"booking_uid"`
	RecipientUID string     `json:"recipient_uid"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	ScheduledFor time.Time  `json:"scheduled_for"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

// StandardMeetingNotifications builds the four notifications scheduled when a
// meeting is provisioned: immediate confirmations for both parties, plus a
// 24-hour and a 1-hour reminder for the learner.
func StandardMeetingNotifications(booking *Booking, now time.Time) []*Notification {
	sessionTime := booking.StartTime

	return []*Notification{
		{
			BookingUID:   booking.UID,
			RecipientUID: booking.LearnerUID,
			Type:         NotificationTypeBookingConfirmation,
			Title:        "Session Confirmed",
			Message:      fmt.Sprintf("Your mentorship session with %s has been confirmed for %s.", booking.MentorName, sessionTime.Format(time.RFC1123)),
			ScheduledFor: now,
		},
		{
			BookingUID:   booking.UID,
			RecipientUID: booking.MentorUID,
			Type:         NotificationTypeBookingConfirmation,
			Title:        "New Session Booked",
			Message:      fmt.Sprintf("%s has booked a session with you for %s.", booking.LearnerName, sessionTime.Format(time.RFC1123)),
			ScheduledFor: now,
		},
		{
			BookingUID:   booking.UID,
			RecipientUID: booking.LearnerUID,
			Type:         NotificationTypeMeetingReminder,
			Title:        "Session Tomorrow",
			Message:      fmt.Sprintf("Reminder: your mentorship session with %s is tomorrow at %s.", booking.MentorName, sessionTime.Format(time.RFC1123)),
			ScheduledFor: sessionTime.Add(-ReminderLeadDay),
		},
		{
			BookingUID:   booking.UID,
			RecipientUID: booking.LearnerUID,
			Type:         NotificationTypeMeetingReminder,
			Title:        "Session Starting Soon",
			Message:      fmt.Sprintf("Your mentorship session with %s starts in 1 hour. The join link is available in your dashboard.", booking.MentorName),
			ScheduledFor: sessionTime.Add(-ReminderLeadHour),
		},
	}
}

// CancellationNotifications builds the messages scheduled when a meeting is
// cancelled by either party.
func CancellationNotifications(booking *Booking, reason string, now time.Time) []*Notification {
	message := "The mentorship session has been cancelled."
	if reason != "" {
		message = fmt.Sprintf("The mentorship session has been cancelled: %s.", reason)
	}

	return []*Notification{
		{
			BookingUID:   booking.UID,
			RecipientUID: booking.LearnerUID,
			Type:         NotificationTypeMeetingCancelled,
			Title:        "Session Cancelled",
			Message:      message,
			ScheduledFor: now,
		},
		{
			BookingUID:   booking.UID,
			RecipientUID: booking.MentorUID,
			Type:         NotificationTypeMeetingCancelled,
			Title:        "Session Cancelled",
			Message:      message,
			ScheduledFor: now,
		},
	}
}
