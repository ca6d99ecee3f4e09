// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package domain contains the core business entities and contracts.
package domain

import (
	"context"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// BookingRepository is the contract for storing and retrieving bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	Exists(ctx context.Context, bookingUID string) (bool, error)
	Get(ctx context.Context, bookingUID string) (*models.Booking, error)
	GetWithRevision(ctx context.Context, bookingUID string) (*models.Booking, uint64, error)
	Update(ctx context.Context, booking *models.Booking, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Booking, error)
	ListByParticipant(ctx context.Context, userUID string) ([]*models.Booking, error)
}

// MeetingRepository is the contract for storing and retrieving meetings.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	Exists(ctx context.Context, meetingUID string) (bool, error)
	Get(ctx context.Context, meetingUID string) (*models.Meeting, error)
	GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error)
	GetByBookingUID(ctx context.Context, bookingUID string) (*models.Meeting, error)
	GetByPlatformMeetingID(ctx context.Context, platform, platformMeetingID string) (*models.Meeting, error)
	Update(ctx context.Context, meeting *models.Meeting, revision uint64) error
	Delete(ctx context.Context, meetingUID string, revision uint64) error
	ListAll(ctx context.Context) ([]*models.Meeting, error)
}

// ParticipantRepository is the contract for storing and retrieving meeting participants.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	Get(ctx context.Context, participantUID string) (*models.Participant, error)
	GetWithRevision(ctx context.Context, participantUID string) (*models.Participant, uint64, error)
	GetByMeetingAndEmail(ctx context.Context, meetingUID, email string) (*models.Participant, uint64, error)
	GetByMeetingAndProviderID(ctx context.Context, meetingUID, providerParticipantID string) (*models.Participant, uint64, error)
	Update(ctx context.Context, participant *models.Participant, revision uint64) error
	ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Participant, error)
}

// NotificationRepository is the contract for storing and retrieving scheduled notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	Get(ctx context.Context, notificationUID string) (*models.Notification, error)
	GetWithRevision(ctx context.Context, notificationUID string) (*models.Notification, uint64, error)
	Update(ctx context.Context, notification *models.Notification, revision uint64) error
	ListByBooking(ctx context.Context, bookingUID string) ([]*models.Notification, error)
}

// AvailabilityRepository is the contract for storing and retrieving mentor availability slots.
type AvailabilityRepository interface {
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	Get(ctx context.Context, slotUID string) (*models.AvailabilitySlot, error)
	GetWithRevision(ctx context.Context, slotUID string) (*models.AvailabilitySlot, uint64, error)
	Update(ctx context.Context, slot *models.AvailabilitySlot, revision uint64) error
	Delete(ctx context.Context, slotUID string, revision uint64) error
	ListByMentor(ctx context.Context, mentorUID string) ([]*models.AvailabilitySlot, error)
}
