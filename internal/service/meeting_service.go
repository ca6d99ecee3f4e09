// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/logging"
	"github.com/mosharaf6/Disha/pkg/concurrent"
)

// StatusTrigger identifies who asked for a meeting status transition.
type StatusTrigger string

const (
	// TriggerUser is a direct API call by one of the booking parties.
	TriggerUser StatusTrigger = "user"
	// TriggerReconciler is a provider webhook applied by the reconciler.
	// Stale or duplicate transitions from this trigger are dropped silently
	// because providers redeliver events.
	TriggerReconciler StatusTrigger = "reconciler"
)

// CreateMeetingRequest carries the inputs for meeting provisioning.
type CreateMeetingRequest struct {
	BookingUID         string
	HostProviderUserID string
	Requester          string
}

// MeetingDetails is a meeting together with its booking, redacted for the
// requesting party.
type MeetingDetails struct {
	Meeting *models.Meeting
	Booking *models.Booking
}

// MeetingService orchestrates the meeting lifecycle: provisioning on the
// platform provider, status transitions, and cancellation bookkeeping.
type MeetingService struct {
	MeetingRepository      domain.MeetingRepository
	BookingRepository      domain.BookingRepository
	ParticipantRepository  domain.ParticipantRepository
	NotificationRepository domain.NotificationRepository
	AvailabilityRepository domain.AvailabilityRepository
	MessageBuilder         domain.MessageBuilder
	PlatformRegistry       domain.PlatformRegistry
	Config                 ServiceConfig
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(
	meetingRepository domain.MeetingRepository,
	bookingRepository domain.BookingRepository,
	participantRepository domain.ParticipantRepository,
	notificationRepository domain.NotificationRepository,
	availabilityRepository domain.AvailabilityRepository,
	messageBuilder domain.MessageBuilder,
	platformRegistry domain.PlatformRegistry,
	config ServiceConfig,
) *MeetingService {
	return &MeetingService{
		MeetingRepository:      meetingRepository,
		BookingRepository:      bookingRepository,
		ParticipantRepository:  participantRepository,
		NotificationRepository: notificationRepository,
		AvailabilityRepository: availabilityRepository,
		MessageBuilder:         messageBuilder,
		PlatformRegistry:       platformRegistry,
		Config:                 config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *MeetingService) ServiceReady() bool {
	return s.MeetingRepository != nil &&
		s.BookingRepository != nil &&
		s.ParticipantRepository != nil &&
		s.NotificationRepository != nil &&
		s.MessageBuilder != nil &&
		s.PlatformRegistry != nil
}

// CreateMeeting provisions a video meeting for a booking. The remote meeting
// is created first; the local record is only written after the provider call
// succeeds, so a provider failure leaves no partial record behind.
func (s *MeetingService) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("booking_uid", req.BookingUID))

	booking, err := s.BookingRepository.Get(ctx, req.BookingUID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(req.Requester) {
		slog.WarnContext(ctx, "requester is not a party to the booking", "requester", req.Requester)
		return nil, domain.NewForbiddenError("requester is not a party to the booking")
	}

	if !booking.MeetingAllowed() {
		slog.WarnContext(ctx, "booking status does not allow meeting creation", "booking_status", booking.Status)
		return nil, domain.NewPreconditionError("booking must be confirmed or paid before a meeting can be created")
	}

	// At most one non-cancelled meeting per booking.
	existing, err := s.MeetingRepository.GetByBookingUID(ctx, req.BookingUID)
	if err != nil && domain.GetErrorType(err) != domain.ErrorTypeNotFound {
		return nil, err
	}
	if existing != nil && existing.Status != models.MeetingStatusCancelled {
		slog.WarnContext(ctx, "booking already has an active meeting", "meeting_uid", existing.UID)
		return nil, domain.NewConflictError("booking already has an active meeting")
	}

	meeting := s.buildMeeting(booking, req)
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meeting.UID))

	provider, ok := s.PlatformRegistry.GetProvider(meeting.Platform)
	if !ok {
		slog.ErrorContext(ctx, "no provider registered for platform", "platform", meeting.Platform, logging.PriorityCritical())
		return nil, domain.NewInternalError("platform provider not available")
	}

	result, err := provider.CreateMeeting(ctx, booking, meeting)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create platform meeting", logging.ErrKey, err)
		return nil, err
	}

	meeting.PlatformMeetingID = result.PlatformMeetingID
	meeting.PlatformMeetingUUID = result.PlatformMeetingUUID
	meeting.HostProviderUserID = result.HostProviderUserID
	meeting.JoinURL = result.JoinURL
	meeting.StartURL = result.StartURL
	meeting.Password = result.Password

	if err := s.MeetingRepository.Create(ctx, meeting); err != nil {
		// The remote meeting exists but the local record does not; clean up
		// the remote side so the booking is not left pointing at an orphan.
		if delErr := provider.DeleteMeeting(ctx, meeting.PlatformMeetingID); delErr != nil {
			slog.ErrorContext(ctx, "failed to clean up platform meeting after store error",
				"platform_meeting_id", meeting.PlatformMeetingID,
				logging.ErrKey, delErr,
				logging.PriorityCritical())
		}
		return nil, err
	}

	s.createParticipantPlaceholders(ctx, booking, meeting)

	if err := s.scheduleCreationSideEffects(ctx, booking, meeting); err != nil {
		slog.ErrorContext(ctx, "failed to schedule meeting creation side effects", logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to schedule meeting side effects", err)
	}

	slog.InfoContext(ctx, "created meeting", "platform_meeting_id", meeting.PlatformMeetingID)

	// The start URL carries host credentials. The stored record keeps it, but
	// a learner-created meeting must not return it to the learner.
	response := *meeting
	if !booking.IsMentor(req.Requester) {
		response.StartURL = ""
	}
	return &response, nil
}

// buildMeeting assembles the meeting record from the booking.
func (s *MeetingService) buildMeeting(booking *models.Booking, req CreateMeetingRequest) *models.Meeting {
	return &models.Meeting{
		UID:                uuid.New().String(),
		BookingUID:         booking.UID,
		Platform:           models.PlatformZoom,
		HostProviderUserID: req.HostProviderUserID,
		Topic:              booking.Topic,
		WaitingRoomEnabled: true,
		MuteOnEntry:        true,
		AutoRecording:      false,
		ScheduledStartTime: booking.StartTime,
		ScheduledDuration:  models.DurationMinutes(booking.Duration),
		Timezone:           booking.Timezone,
		Status:             models.MeetingStatusScheduled,
	}
}

// createParticipantPlaceholders writes the host and attendee rows that the
// webhook reconciler later fills in. Failures are logged, not fatal; the
// meeting itself is already provisioned.
func (s *MeetingService) createParticipantPlaceholders(ctx context.Context, booking *models.Booking, meeting *models.Meeting) {
	participants := []*models.Participant{
		{
			MeetingUID:  meeting.UID,
			UserUID:     booking.MentorUID,
			DisplayName: booking.MentorName,
			Email:       booking.MentorEmail,
			Role:        models.ParticipantRoleHost,
		},
		{
			MeetingUID:  meeting.UID,
			UserUID:     booking.LearnerUID,
			DisplayName: booking.LearnerName,
			Email:       booking.LearnerEmail,
			Role:        models.ParticipantRoleAttendee,
		},
	}

	for _, participant := range participants {
		if err := s.ParticipantRepository.Create(ctx, participant); err != nil {
			slog.ErrorContext(ctx, "failed to create participant placeholder",
				"participant_email", participant.Email,
				logging.ErrKey, err,
				logging.PriorityCritical())
		}
	}
}

// scheduleCreationSideEffects persists the notification schedule and fans the
// announcement messages out over the bounded worker pool.
func (s *MeetingService) scheduleCreationSideEffects(ctx context.Context, booking *models.Booking, meeting *models.Meeting) error {
	notifications := models.StandardMeetingNotifications(booking, time.Now().UTC())

	tasks := make([]func() error, 0, len(notifications)+1)
	for _, notification := range notifications {
		notification := notification
		tasks = append(tasks, func() error {
			if err := s.NotificationRepository.Create(ctx, notification); err != nil {
				return err
			}
			return s.MessageBuilder.SendNotificationScheduled(ctx, notification)
		})
	}
	tasks = append(tasks, func() error {
		return s.MessageBuilder.SendMeetingCreated(ctx, models.MeetingCreatedMessage{
			MeetingUID: meeting.UID,
			BookingUID: booking.UID,
			Meeting:    meeting,
		})
	})

	pool := concurrent.NewWorkerPool(s.Config.sideEffectWorkers())
	return pool.Run(ctx, tasks...)
}

// GetMeeting returns the meeting and its booking, redacted for the requester.
// Only the booking parties may view a meeting; the start URL and the mentor's
// notes are visible to the mentor alone.
func (s *MeetingService) GetMeeting(ctx context.Context, meetingUID, requester string) (*MeetingDetails, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, err := s.MeetingRepository.Get(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	return s.meetingDetailsFor(ctx, meeting, requester)
}

// GetMeetingForBooking returns the booking's meeting, redacted for the requester.
func (s *MeetingService) GetMeetingForBooking(ctx context.Context, bookingUID, requester string) (*MeetingDetails, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("booking_uid", bookingUID))

	meeting, err := s.MeetingRepository.GetByBookingUID(ctx, bookingUID)
	if err != nil {
		return nil, err
	}

	return s.meetingDetailsFor(ctx, meeting, requester)
}

func (s *MeetingService) meetingDetailsFor(ctx context.Context, meeting *models.Meeting, requester string) (*MeetingDetails, error) {
	booking, err := s.BookingRepository.Get(ctx, meeting.BookingUID)
	if err != nil {
		return nil, err
	}

	if !booking.IsParty(requester) {
		slog.WarnContext(ctx, "requester is not a party to the booking", "requester", requester)
		return nil, domain.NewForbiddenError("requester is not a party to the booking")
	}

	meetingCopy := *meeting
	bookingCopy := *booking
	if !booking.IsMentor(requester) {
		meetingCopy.StartURL = ""
		bookingCopy.MentorNotes = ""
	}

	return &MeetingDetails{Meeting: &meetingCopy, Booking: &bookingCopy}, nil
}

// UpdateMeetingStatus moves a meeting through the lifecycle state machine.
// A user-triggered call must come from one of the booking parties.
// Reconciler-triggered transitions that are stale or duplicated are dropped
// without error; a direct user call gets an invalid-transition error. On a
// revision conflict the transition is re-read and re-applied once.
func (s *MeetingService) UpdateMeetingStatus(ctx context.Context, meetingUID, requester string, next models.MeetingStatus, trigger StatusTrigger) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("next_status", string(next)))

	meeting, err := s.applyStatusTransition(ctx, meetingUID, requester, next, trigger)
	if err != nil || meeting == nil {
		return meeting, err
	}

	if meeting.Status == models.MeetingStatusEnded {
		s.completeBooking(ctx, meeting.BookingUID)
	}

	if err := s.MessageBuilder.SendMeetingUpdated(ctx, models.MeetingUpdatedMessage{
		MeetingUID: meeting.UID,
		BookingUID: meeting.BookingUID,
		Status:     meeting.Status,
		UpdatedAt:  time.Now().UTC(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send meeting updated message", logging.ErrKey, err)
	}

	return meeting, nil
}

// applyStatusTransition performs the revision-checked state machine write,
// retrying once on a concurrent writer. User-triggered transitions are
// authorized against the booking parties before anything else.
func (s *MeetingService) applyStatusTransition(ctx context.Context, meetingUID, requester string, next models.MeetingStatus, trigger StatusTrigger) (*models.Meeting, error) {
	for attempt := 0; attempt < 2; attempt++ {
		meeting, revision, err := s.MeetingRepository.GetWithRevision(ctx, meetingUID)
		if err != nil {
			return nil, err
		}

		if trigger == TriggerUser {
			booking, err := s.BookingRepository.Get(ctx, meeting.BookingUID)
			if err != nil {
				return nil, err
			}
			if !booking.IsParty(requester) {
				slog.WarnContext(ctx, "requester is not a party to the booking", "requester", requester)
				return nil, domain.NewForbiddenError("requester is not a party to the booking")
			}
		}

		if meeting.Status == next {
			// Duplicate delivery; nothing to do.
			slog.DebugContext(ctx, "meeting already in requested status")
			return meeting, nil
		}

		if !meeting.Status.CanTransitionTo(next) {
			if trigger == TriggerReconciler {
				slog.WarnContext(ctx, "dropping stale status transition from provider event",
					"current_status", meeting.Status)
				return meeting, nil
			}
			return nil, domain.NewInvalidTransitionError("meeting cannot transition from " + string(meeting.Status) + " to " + string(next))
		}

		meeting.ApplyTransition(next, time.Now().UTC())

		err = s.MeetingRepository.Update(ctx, meeting, revision)
		if err == nil {
			return meeting, nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return nil, err
		}
		slog.WarnContext(ctx, "revision conflict applying status transition, retrying")
	}

	return nil, domain.NewConflictError("meeting was modified concurrently")
}

// completeBooking marks the booking completed after its meeting ended.
// Failures are logged; the meeting transition has already been applied.
func (s *MeetingService) completeBooking(ctx context.Context, bookingUID string) {
	booking, revision, err := s.BookingRepository.GetWithRevision(ctx, bookingUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load booking for completion", logging.ErrKey, err)
		return
	}
	if booking.Status == models.BookingStatusCompleted || booking.Status == models.BookingStatusCancelled {
		return
	}

	booking.Status = models.BookingStatusCompleted
	now := time.Now().UTC()
	booking.UpdatedAt = &now

	if err := s.BookingRepository.Update(ctx, booking, revision); err != nil {
		slog.ErrorContext(ctx, "failed to mark booking completed", logging.ErrKey, err)
		return
	}

	if err := s.MessageBuilder.SendBookingUpdated(ctx, models.BookingUpdatedMessage{
		BookingUID: booking.UID,
		Status:     booking.Status,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send booking updated message", logging.ErrKey, err)
	}
}

// CancelMeeting cancels a meeting and performs the cancellation bookkeeping:
// booking cancelled with the reason, slot freed, notifications scheduled.
// The remote delete is best effort; provider failures other than "already
// gone" are logged and the local cancellation still applies.
func (s *MeetingService) CancelMeeting(ctx context.Context, meetingUID, requester, reason string) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("meeting service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	meeting, revision, err := s.MeetingRepository.GetWithRevision(ctx, meetingUID)
	if err != nil {
		return err
	}

	booking, bookingRevision, err := s.BookingRepository.GetWithRevision(ctx, meeting.BookingUID)
	if err != nil {
		return err
	}

	if !booking.IsParty(requester) {
		slog.WarnContext(ctx, "requester is not a party to the booking", "requester", requester)
		return domain.NewForbiddenError("requester is not a party to the booking")
	}

	if meeting.Status.Terminal() {
		return domain.NewPreconditionError("meeting is already " + string(meeting.Status))
	}

	if provider, ok := s.PlatformRegistry.GetProvider(meeting.Platform); ok {
		if err := provider.DeleteMeeting(ctx, meeting.PlatformMeetingID); err != nil {
			slog.ErrorContext(ctx, "failed to delete platform meeting, applying local cancellation anyway",
				logging.ErrKey, err)
		}
	}

	now := time.Now().UTC()

	meeting.ApplyTransition(models.MeetingStatusCancelled, now)
	if err := s.MeetingRepository.Update(ctx, meeting, revision); err != nil {
		return err
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancellationReason = reason
	booking.UpdatedAt = &now
	if err := s.BookingRepository.Update(ctx, booking, bookingRevision); err != nil {
		slog.ErrorContext(ctx, "failed to mark booking cancelled", logging.ErrKey, err, logging.PriorityCritical())
	}

	s.freeSlot(ctx, booking)

	for _, notification := range models.CancellationNotifications(booking, reason, now) {
		if err := s.NotificationRepository.Create(ctx, notification); err != nil {
			slog.ErrorContext(ctx, "failed to create cancellation notification", logging.ErrKey, err)
			continue
		}
		if err := s.MessageBuilder.SendNotificationScheduled(ctx, notification); err != nil {
			slog.ErrorContext(ctx, "failed to send notification scheduled message", logging.ErrKey, err)
		}
	}

	if err := s.MessageBuilder.SendMeetingUpdated(ctx, models.MeetingUpdatedMessage{
		MeetingUID: meeting.UID,
		BookingUID: booking.UID,
		Status:     meeting.Status,
		UpdatedAt:  now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send meeting updated message", logging.ErrKey, err)
	}
	if err := s.MessageBuilder.SendBookingUpdated(ctx, models.BookingUpdatedMessage{
		BookingUID: booking.UID,
		Status:     booking.Status,
		Reason:     reason,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send booking updated message", logging.ErrKey, err)
	}

	slog.InfoContext(ctx, "cancelled meeting", "reason", reason)

	return nil
}

// freeSlot reopens the availability slot held by a cancelled booking.
func (s *MeetingService) freeSlot(ctx context.Context, booking *models.Booking) {
	if booking.SlotUID == "" || s.AvailabilityRepository == nil {
		return
	}

	slot, revision, err := s.AvailabilityRepository.GetWithRevision(ctx, booking.SlotUID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load slot for freeing", "slot_uid", booking.SlotUID, logging.ErrKey, err)
		return
	}

	slot.Booked = false
	if err := s.AvailabilityRepository.Update(ctx, slot, revision); err != nil {
		slog.ErrorContext(ctx, "failed to free availability slot", "slot_uid", booking.SlotUID, logging.ErrKey, err)
	}
}
