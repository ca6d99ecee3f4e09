// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/logging"
	"github.com/mosharaf6/Disha/pkg/constants"
)

// BookingService handles session bookings between learners and mentors.
type BookingService struct {
	BookingRepository      domain.BookingRepository
	AvailabilityRepository domain.AvailabilityRepository
	Config                 ServiceConfig
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepository domain.BookingRepository,
	availabilityRepository domain.AvailabilityRepository,
	config ServiceConfig,
) *BookingService {
	return &BookingService{
		BookingRepository:      bookingRepository,
		AvailabilityRepository: availabilityRepository,
		Config:                 config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *BookingService) ServiceReady() bool {
	return s.BookingRepository != nil && s.AvailabilityRepository != nil
}

func (s *BookingService) validateCreateBookingPayload(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return domain.NewValidationError("booking payload is required")
	}
	if booking.LearnerUID == "" || booking.MentorUID == "" {
		return domain.NewValidationError("learner and mentor are required")
	}
	if booking.LearnerEmail == "" || booking.MentorEmail == "" {
		return domain.NewValidationError("learner and mentor emails are required")
	}
	if booking.LearnerUID == booking.MentorUID {
		return domain.NewValidationError("learner and mentor must be different users")
	}

	now := time.Now().UTC()
	minStart := now.Add(constants.MinBookingLeadTimeMinutes * time.Minute)
	if booking.StartTime.Before(minStart) {
		slog.WarnContext(ctx, "booking start time is too soon", "start_time", booking.StartTime)
		return domain.NewValidationError("booking must start at least 30 minutes from now")
	}
	if !booking.EndTime.After(booking.StartTime) {
		return domain.NewValidationError("booking end time must be after start time")
	}
	if models.DurationMinutes(booking.Duration) > constants.MaxMeetingDurationMinutes {
		return domain.NewValidationError("booking duration exceeds the maximum session length")
	}

	return nil
}

// CreateBooking books a session, claiming the referenced availability slot
// when one is given. The slot claim is a revision-checked write, so two
// learners racing for the same slot cannot both win.
func (s *BookingService) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("booking service not initialized")
	}

	// Adopt the slot's window before validation so the time checks run
	// against what will actually be booked.
	if booking != nil && booking.SlotUID != "" {
		if err := s.adoptSlotWindow(ctx, booking); err != nil {
			return nil, err
		}
	}

	if err := s.validateCreateBookingPayload(ctx, booking); err != nil {
		return nil, err
	}

	if booking.SlotUID != "" {
		if err := s.claimSlot(ctx, booking); err != nil {
			return nil, err
		}
	}

	booking.Status = models.BookingStatusConfirmed
	booking.CancellationReason = ""

	if err := s.BookingRepository.Create(ctx, booking); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "created booking",
		"booking_uid", booking.UID,
		"mentor_uid", booking.MentorUID,
		"learner_uid", booking.LearnerUID)

	return booking, nil
}

// adoptSlotWindow copies the slot's window and duration onto the booking.
func (s *BookingService) adoptSlotWindow(ctx context.Context, booking *models.Booking) error {
	slot, err := s.AvailabilityRepository.Get(ctx, booking.SlotUID)
	if err != nil {
		return err
	}

	if slot.MentorUID != booking.MentorUID {
		return domain.NewValidationError("slot does not belong to the requested mentor")
	}

	booking.StartTime = slot.StartTime
	booking.EndTime = slot.EndTime
	if booking.Duration == "" {
		booking.Duration = slot.Duration
	}

	return nil
}

// claimSlot marks the availability slot booked with a revision-checked write.
func (s *BookingService) claimSlot(ctx context.Context, booking *models.Booking) error {
	ctx = logging.AppendCtx(ctx, slog.String("slot_uid", booking.SlotUID))

	slot, revision, err := s.AvailabilityRepository.GetWithRevision(ctx, booking.SlotUID)
	if err != nil {
		return err
	}

	if !slot.Open(time.Now().UTC()) {
		return domain.NewConflictError("slot is no longer available")
	}

	slot.Booked = true
	if err := s.AvailabilityRepository.Update(ctx, slot, revision); err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeConflict {
			return domain.NewConflictError("slot is no longer available", err)
		}
		return err
	}

	return nil
}

// GetBooking returns the booking, redacted for the requester. Only the
// booking parties may view it; mentor notes are visible to the mentor alone.
func (s *BookingService) GetBooking(ctx context.Context, bookingUID, requester string) (*models.Booking, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("booking service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("booking_uid", bookingUID))

	booking, err := s.BookingRepository.Get(ctx, bookingUID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(requester) {
		slog.WarnContext(ctx, "requester is not a party to the booking", "requester", requester)
		return nil, domain.NewForbiddenError("requester is not a party to the booking")
	}

	return redactBooking(booking, requester), nil
}

// ListBookings returns all bookings the requester is a party to, redacted.
func (s *BookingService) ListBookings(ctx context.Context, requester string) ([]*models.Booking, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("booking service not initialized")
	}

	bookings, err := s.BookingRepository.ListByParticipant(ctx, requester)
	if err != nil {
		return nil, err
	}

	redacted := make([]*models.Booking, len(bookings))
	for i, booking := range bookings {
		redacted[i] = redactBooking(booking, requester)
	}

	return redacted, nil
}

// redactBooking hides the mentor's private notes from non-mentors.
func redactBooking(booking *models.Booking, requester string) *models.Booking {
	bookingCopy := *booking
	if !booking.IsMentor(requester) {
		bookingCopy.MentorNotes = ""
	}
	return &bookingCopy
}
