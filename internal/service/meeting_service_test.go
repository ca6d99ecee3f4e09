// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/mocks"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

type meetingServiceMocks struct {
	meetingRepo      *mocks.MockMeetingRepository
	bookingRepo      *mocks.MockBookingRepository
	participantRepo  *mocks.MockParticipantRepository
	notificationRepo *mocks.MockNotificationRepository
	availabilityRepo *mocks.MockAvailabilityRepository
	messageBuilder   *mocks.MockMessageBuilder
	registry         *mocks.MockPlatformRegistry
	provider         *mocks.MockPlatformProvider
}

func newMeetingService() (*MeetingService, *meetingServiceMocks) {
	m := &meetingServiceMocks{
		meetingRepo:      &mocks.MockMeetingRepository{},
		bookingRepo:      &mocks.MockBookingRepository{},
		participantRepo:  &mocks.MockParticipantRepository{},
		notificationRepo: &mocks.MockNotificationRepository{},
		availabilityRepo: &mocks.MockAvailabilityRepository{},
		messageBuilder:   &mocks.MockMessageBuilder{},
		registry:         &mocks.MockPlatformRegistry{},
		provider:         &mocks.MockPlatformProvider{},
	}

	svc := NewMeetingService(
		m.meetingRepo,
		m.bookingRepo,
		m.participantRepo,
		m.notificationRepo,
		m.availabilityRepo,
		m.messageBuilder,
		m.registry,
		ServiceConfig{},
	)

	return svc, m
}

func confirmedBooking() *models.Booking {
	return &models.Booking{
		UID:          "booking-1",
		LearnerUID:   "learner-1",
		LearnerName:  "Asha Rahman",
		LearnerEmail: "asha@example.com",
		MentorUID:    "mentor-1",
		MentorName:   "Tanvir Ahmed",
		MentorEmail:  "tanvir@example.com",
		SlotUID:      "slot-1",
		StartTime:    time.Now().UTC().Add(48 * time.Hour),
		EndTime:      time.Now().UTC().Add(49 * time.Hour),
		Duration:     models.DurationCategoryFullHour,
		Topic:        "System design",
		MentorNotes:  "prep distributed systems examples",
		Status:       models.BookingStatusConfirmed,
	}
}

func scheduledMeeting() *models.Meeting {
	return &models.Meeting{
		UID:                "meeting-1",
		BookingUID:         "booking-1",
		Platform:           models.PlatformZoom,
		PlatformMeetingID:  "987654321",
		JoinURL:            "https://zoom.us/j/987654321",
		StartURL:           "https://zoom.us/s/987654321",
		ScheduledStartTime: time.Now().UTC().Add(48 * time.Hour),
		ScheduledDuration:  60,
		Status:             models.MeetingStatusScheduled,
	}
}

func TestMeetingServiceServiceReady(t *testing.T) {
	svc, _ := newMeetingService()
	assert.True(t, svc.ServiceReady())

	svc.MeetingRepository = nil
	assert.False(t, svc.ServiceReady())
}

func TestCreateMeeting(t *testing.T) {
	req := CreateMeetingRequest{BookingUID: "booking-1", Requester: "learner-1"}

	t.Run("success", func(t *testing.T) {
		svc, m := newMeetingService()
		booking := confirmedBooking()

		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(booking, nil)
		m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").
			Return(nil, domain.NewNotFoundError("no meeting found"))
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("CreateMeeting", mock.Anything, booking, mock.AnythingOfType("*models.Meeting")).
			Return(&domain.CreateMeetingResult{
				PlatformMeetingID:   "987654321",
				PlatformMeetingUUID: "abc==",
				HostProviderUserID:  "host-user",
				JoinURL:             "https://zoom.us/j/987654321",
				StartURL:            "https://zoom.us/s/987654321",
				Password:            "pass123",
			}, nil)
		m.meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Meeting")).Return(nil)
		m.participantRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Participant")).Return(nil).Twice()
		m.notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).Times(4)
		m.messageBuilder.On("SendNotificationScheduled", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).Times(4)
		m.messageBuilder.On("SendMeetingCreated", mock.Anything, mock.AnythingOfType("models.MeetingCreatedMessage")).Return(nil)

		meeting, err := svc.CreateMeeting(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, meeting)

		assert.NotEmpty(t, meeting.UID)
		assert.Equal(t, "booking-1", meeting.BookingUID)
		assert.Equal(t, "987654321", meeting.PlatformMeetingID)
		assert.Equal(t, "pass123", meeting.Password)
		assert.Equal(t, 60, meeting.ScheduledDuration)
		assert.Equal(t, models.MeetingStatusScheduled, meeting.Status)

		m.provider.AssertExpectations(t)
		m.meetingRepo.AssertExpectations(t)
		m.participantRepo.AssertExpectations(t)
		m.notificationRepo.AssertExpectations(t)
		m.messageBuilder.AssertExpectations(t)
	})

	t.Run("requester not a party", func(t *testing.T) {
		svc, m := newMeetingService()
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

		_, err := svc.CreateMeeting(context.Background(), CreateMeetingRequest{
			BookingUID: "booking-1",
			Requester:  "stranger",
		})
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeForbidden, domain.GetErrorType(err))
	})

	t.Run("pending booking rejected", func(t *testing.T) {
		svc, m := newMeetingService()
		booking := confirmedBooking()
		booking.Status = models.BookingStatusPending
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(booking, nil)

		_, err := svc.CreateMeeting(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypePrecondition, domain.GetErrorType(err))
	})

	t.Run("booking already has an active meeting", func(t *testing.T) {
		svc, m := newMeetingService()
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").Return(scheduledMeeting(), nil)

		_, err := svc.CreateMeeting(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
	})

	t.Run("cancelled meeting does not block re-creation", func(t *testing.T) {
		svc, m := newMeetingService()
		cancelled := scheduledMeeting()
		cancelled.Status = models.MeetingStatusCancelled

		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").Return(cancelled, nil)
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("CreateMeeting", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.CreateMeetingResult{PlatformMeetingID: "111", JoinURL: "https://zoom.us/j/111", Password: "p"}, nil)
		m.meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.participantRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendNotificationScheduled", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendMeetingCreated", mock.Anything, mock.Anything).Return(nil)

		meeting, err := svc.CreateMeeting(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "111", meeting.PlatformMeetingID)
	})

	t.Run("learner creator does not receive the start URL", func(t *testing.T) {
		svc, m := newMeetingService()
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").
			Return(nil, domain.NewNotFoundError("no meeting found"))
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("CreateMeeting", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.CreateMeetingResult{
				PlatformMeetingID: "987654321",
				JoinURL:           "https://zoom.us/j/987654321",
				StartURL:          "https://zoom.us/s/987654321?zak=host-secret",
				Password:          "pass123",
			}, nil)
		m.meetingRepo.On("Create", mock.Anything, mock.MatchedBy(func(mtg *models.Meeting) bool {
			return mtg.StartURL == "https://zoom.us/s/987654321?zak=host-secret"
		})).Return(nil)
		m.participantRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendNotificationScheduled", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendMeetingCreated", mock.Anything, mock.Anything).Return(nil)

		meeting, err := svc.CreateMeeting(context.Background(), CreateMeetingRequest{
			BookingUID: "booking-1",
			Requester:  "learner-1",
		})
		require.NoError(t, err)
		assert.Empty(t, meeting.StartURL)
		assert.NotEmpty(t, meeting.JoinURL)
		assert.NotEmpty(t, meeting.Password)
		m.meetingRepo.AssertExpectations(t)
	})

	t.Run("mentor creator receives the start URL", func(t *testing.T) {
		svc, m := newMeetingService()
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").
			Return(nil, domain.NewNotFoundError("no meeting found"))
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("CreateMeeting", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.CreateMeetingResult{
				PlatformMeetingID: "987654321",
				JoinURL:           "https://zoom.us/j/987654321",
				StartURL:          "https://zoom.us/s/987654321?zak=host-secret",
				Password:          "pass123",
			}, nil)
		m.meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.participantRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendNotificationScheduled", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendMeetingCreated", mock.Anything, mock.Anything).Return(nil)

		meeting, err := svc.CreateMeeting(context.Background(), CreateMeetingRequest{
			BookingUID: "booking-1",
			Requester:  "mentor-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://zoom.us/s/987654321?zak=host-secret", meeting.StartURL)
	})

	t.Run("provider failure leaves no local record", func(t *testing.T) {
		svc, m := newMeetingService()
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").
			Return(nil, domain.NewNotFoundError("no meeting found"))
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("CreateMeeting", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, domain.NewUpstreamError("zoom is down"))

		_, err := svc.CreateMeeting(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeUpstream, domain.GetErrorType(err))
		m.meetingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure cleans up the remote meeting", func(t *testing.T) {
		svc, m := newMeetingService()
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").
			Return(nil, domain.NewNotFoundError("no meeting found"))
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("CreateMeeting", mock.Anything, mock.Anything, mock.Anything).
			Return(&domain.CreateMeetingResult{PlatformMeetingID: "222", JoinURL: "u", Password: "p"}, nil)
		m.meetingRepo.On("Create", mock.Anything, mock.Anything).
			Return(domain.NewUnavailableError("store down"))
		m.provider.On("DeleteMeeting", mock.Anything, "222").Return(nil)

		_, err := svc.CreateMeeting(context.Background(), req)
		require.Error(t, err)
		m.provider.AssertCalled(t, "DeleteMeeting", mock.Anything, "222")
	})
}

func TestGetMeeting(t *testing.T) {
	t.Run("mentor sees start URL and notes", func(t *testing.T) {
		svc, m := newMeetingService()
		m.meetingRepo.On("Get", mock.Anything, "meeting-1").Return(scheduledMeeting(), nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

		details, err := svc.GetMeeting(context.Background(), "meeting-1", "mentor-1")
		require.NoError(t, err)
		assert.NotEmpty(t, details.Meeting.StartURL)
		assert.NotEmpty(t, details.Booking.MentorNotes)
	})

	t.Run("learner does not see start URL or notes", func(t *testing.T) {
		svc, m := newMeetingService()
		m.meetingRepo.On("Get", mock.Anything, "meeting-1").Return(scheduledMeeting(), nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

		details, err := svc.GetMeeting(context.Background(), "meeting-1", "learner-1")
		require.NoError(t, err)
		assert.Empty(t, details.Meeting.StartURL)
		assert.Empty(t, details.Booking.MentorNotes)
		assert.NotEmpty(t, details.Meeting.JoinURL)
	})

	t.Run("non-party is rejected", func(t *testing.T) {
		svc, m := newMeetingService()
		m.meetingRepo.On("Get", mock.Anything, "meeting-1").Return(scheduledMeeting(), nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

		_, err := svc.GetMeeting(context.Background(), "meeting-1", "stranger")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeForbidden, domain.GetErrorType(err))
	})

	t.Run("redaction does not mutate the stored meeting", func(t *testing.T) {
		svc, m := newMeetingService()
		stored := scheduledMeeting()
		m.meetingRepo.On("Get", mock.Anything, "meeting-1").Return(stored, nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

		_, err := svc.GetMeeting(context.Background(), "meeting-1", "learner-1")
		require.NoError(t, err)
		assert.NotEmpty(t, stored.StartURL)
	})
}

func TestGetMeetingForBooking(t *testing.T) {
	svc, m := newMeetingService()
	m.meetingRepo.On("GetByBookingUID", mock.Anything, "booking-1").Return(scheduledMeeting(), nil)
	m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

	details, err := svc.GetMeetingForBooking(context.Background(), "booking-1", "mentor-1")
	require.NoError(t, err)
	assert.Equal(t, "meeting-1", details.Meeting.UID)
}

func TestUpdateMeetingStatus(t *testing.T) {
	t.Run("scheduled to started stamps actual start", func(t *testing.T) {
		svc, m := newMeetingService()
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(scheduledMeeting(), uint64(3), nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Meeting"), uint64(3)).Return(nil)
		m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.AnythingOfType("models.MeetingUpdatedMessage")).Return(nil)

		meeting, err := svc.UpdateMeetingStatus(context.Background(), "meeting-1", "mentor-1", models.MeetingStatusStarted, TriggerUser)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusStarted, meeting.Status)
		assert.NotNil(t, meeting.ActualStartTime)
	})

	t.Run("ended completes the booking", func(t *testing.T) {
		svc, m := newMeetingService()
		started := scheduledMeeting()
		started.Status = models.MeetingStatusStarted
		startTime := time.Now().UTC().Add(-30 * time.Minute)
		started.ActualStartTime = &startTime

		booking := confirmedBooking()

		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(started, uint64(4), nil)
		m.meetingRepo.On("Update", mock.Anything, mock.Anything, uint64(4)).Return(nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(booking, nil)
		m.bookingRepo.On("GetWithRevision", mock.Anything, "booking-1").Return(booking, uint64(2), nil)
		m.bookingRepo.On("Update", mock.Anything, mock.Anything, uint64(2)).Return(nil)
		m.messageBuilder.On("SendBookingUpdated", mock.Anything, mock.MatchedBy(func(msg models.BookingUpdatedMessage) bool {
			return msg.Status == models.BookingStatusCompleted
		})).Return(nil)
		m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

		meeting, err := svc.UpdateMeetingStatus(context.Background(), "meeting-1", "learner-1", models.MeetingStatusEnded, TriggerUser)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusEnded, meeting.Status)
		assert.NotNil(t, meeting.ActualEndTime)
		assert.Equal(t, 30, meeting.ActualDuration)
		m.bookingRepo.AssertExpectations(t)
	})

	t.Run("invalid transition from user is an error", func(t *testing.T) {
		svc, m := newMeetingService()
		ended := scheduledMeeting()
		ended.Status = models.MeetingStatusEnded
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(ended, uint64(5), nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

		_, err := svc.UpdateMeetingStatus(context.Background(), "meeting-1", "mentor-1", models.MeetingStatusStarted, TriggerUser)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeInvalidTransition, domain.GetErrorType(err))
	})

	t.Run("non-party cannot drive a transition", func(t *testing.T) {
		svc, m := newMeetingService()
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(scheduledMeeting(), uint64(3), nil)
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)

		_, err := svc.UpdateMeetingStatus(context.Background(), "meeting-1", "total-stranger", models.MeetingStatusEnded, TriggerUser)
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeForbidden, domain.GetErrorType(err))
		m.meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		m.bookingRepo.AssertNotCalled(t, "GetWithRevision", mock.Anything, mock.Anything)
	})

	t.Run("stale transition from reconciler is dropped", func(t *testing.T) {
		svc, m := newMeetingService()
		cancelled := scheduledMeeting()
		cancelled.Status = models.MeetingStatusCancelled
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(cancelled, uint64(5), nil)
		m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

		meeting, err := svc.UpdateMeetingStatus(context.Background(), "meeting-1", "", models.MeetingStatusStarted, TriggerReconciler)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusCancelled, meeting.Status)
		m.meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate delivery is a no-op", func(t *testing.T) {
		svc, m := newMeetingService()
		started := scheduledMeeting()
		started.Status = models.MeetingStatusStarted
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(started, uint64(6), nil)
		m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

		meeting, err := svc.UpdateMeetingStatus(context.Background(), "meeting-1", "", models.MeetingStatusStarted, TriggerReconciler)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusStarted, meeting.Status)
		m.meetingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("revision conflict is retried once", func(t *testing.T) {
		svc, m := newMeetingService()

		first := scheduledMeeting()
		second := scheduledMeeting()

		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(first, uint64(1), nil).Once()
		m.bookingRepo.On("Get", mock.Anything, "booking-1").Return(confirmedBooking(), nil)
		m.meetingRepo.On("Update", mock.Anything, mock.Anything, uint64(1)).
			Return(domain.NewConflictError("wrong last sequence")).Once()
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(second, uint64(2), nil).Once()
		m.meetingRepo.On("Update", mock.Anything, mock.Anything, uint64(2)).Return(nil).Once()
		m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

		meeting, err := svc.UpdateMeetingStatus(context.Background(), "meeting-1", "mentor-1", models.MeetingStatusStarted, TriggerUser)
		require.NoError(t, err)
		assert.Equal(t, models.MeetingStatusStarted, meeting.Status)
		m.meetingRepo.AssertExpectations(t)
	})
}

func TestCancelMeeting(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := scheduledMeeting()
		booking := confirmedBooking()
		slot := &models.AvailabilitySlot{UID: "slot-1", MentorUID: "mentor-1", Booked: true}

		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(2), nil)
		m.bookingRepo.On("GetWithRevision", mock.Anything, "booking-1").Return(booking, uint64(3), nil)
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("DeleteMeeting", mock.Anything, "987654321").Return(nil)
		m.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(mtg *models.Meeting) bool {
			return mtg.Status == models.MeetingStatusCancelled
		}), uint64(2)).Return(nil)
		m.bookingRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
			return b.Status == models.BookingStatusCancelled && b.CancellationReason == "mentor unavailable"
		}), uint64(3)).Return(nil)
		m.availabilityRepo.On("GetWithRevision", mock.Anything, "slot-1").Return(slot, uint64(1), nil)
		m.availabilityRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *models.AvailabilitySlot) bool {
			return !s.Booked
		}), uint64(1)).Return(nil)
		m.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()
		m.messageBuilder.On("SendNotificationScheduled", mock.Anything, mock.Anything).Return(nil).Twice()
		m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendBookingUpdated", mock.Anything, mock.Anything).Return(nil)

		err := svc.CancelMeeting(context.Background(), "meeting-1", "mentor-1", "mentor unavailable")
		require.NoError(t, err)
		m.availabilityRepo.AssertExpectations(t)
		m.notificationRepo.AssertExpectations(t)
	})

	t.Run("provider failure does not block local cancellation", func(t *testing.T) {
		svc, m := newMeetingService()
		meeting := scheduledMeeting()
		booking := confirmedBooking()
		booking.SlotUID = ""

		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(2), nil)
		m.bookingRepo.On("GetWithRevision", mock.Anything, "booking-1").Return(booking, uint64(3), nil)
		m.registry.On("GetProvider", models.PlatformZoom).Return(m.provider, true)
		m.provider.On("DeleteMeeting", mock.Anything, "987654321").
			Return(domain.NewUpstreamError("zoom is down"))
		m.meetingRepo.On("Update", mock.Anything, mock.Anything, uint64(2)).Return(nil)
		m.bookingRepo.On("Update", mock.Anything, mock.Anything, uint64(3)).Return(nil)
		m.notificationRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendNotificationScheduled", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)
		m.messageBuilder.On("SendBookingUpdated", mock.Anything, mock.Anything).Return(nil)

		err := svc.CancelMeeting(context.Background(), "meeting-1", "learner-1", "")
		require.NoError(t, err)
		m.meetingRepo.AssertExpectations(t)
	})

	t.Run("already ended meeting cannot be cancelled", func(t *testing.T) {
		svc, m := newMeetingService()
		ended := scheduledMeeting()
		ended.Status = models.MeetingStatusEnded

		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(ended, uint64(2), nil)
		m.bookingRepo.On("GetWithRevision", mock.Anything, "booking-1").Return(confirmedBooking(), uint64(3), nil)

		err := svc.CancelMeeting(context.Background(), "meeting-1", "mentor-1", "")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypePrecondition, domain.GetErrorType(err))
	})

	t.Run("non-party cannot cancel", func(t *testing.T) {
		svc, m := newMeetingService()
		m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(scheduledMeeting(), uint64(2), nil)
		m.bookingRepo.On("GetWithRevision", mock.Anything, "booking-1").Return(confirmedBooking(), uint64(3), nil)

		err := svc.CancelMeeting(context.Background(), "meeting-1", "stranger", "")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeForbidden, domain.GetErrorType(err))
	})
}

func TestRecordParticipantJoined(t *testing.T) {
	joinedAt := time.Now().UTC()

	t.Run("matches placeholder by email", func(t *testing.T) {
		svc, m := newMeetingService()
		placeholder := &models.Participant{
			UID:        "participant-1",
			MeetingUID: "meeting-1",
			UserUID:    "learner-1",
			Email:      "asha@example.com",
			Role:       models.ParticipantRoleAttendee,
		}

		m.participantRepo.On("GetByMeetingAndEmail", mock.Anything, "meeting-1", "asha@example.com").
			Return(placeholder, uint64(1), nil)
		m.participantRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Participant) bool {
			return p.AttendanceStatus == models.AttendanceJoined && p.ProviderParticipantID == "zoom-user-9"
		}), uint64(1)).Return(nil)

		err := svc.RecordParticipantJoined(context.Background(), "meeting-1", "asha@example.com", "zoom-user-9", "Asha R", joinedAt)
		require.NoError(t, err)
		m.participantRepo.AssertExpectations(t)
	})

	t.Run("unknown email creates a guest row", func(t *testing.T) {
		svc, m := newMeetingService()
		m.participantRepo.On("GetByMeetingAndEmail", mock.Anything, "meeting-1", "guest@example.com").
			Return(nil, uint64(0), domain.NewNotFoundError("participant not found"))
		m.participantRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Participant) bool {
			return p.Email == "guest@example.com" && p.AttendanceStatus == models.AttendanceJoined
		})).Return(nil)

		err := svc.RecordParticipantJoined(context.Background(), "meeting-1", "guest@example.com", "zoom-user-7", "Guest", joinedAt)
		require.NoError(t, err)
		m.participantRepo.AssertExpectations(t)
	})
}

func TestRecordParticipantLeft(t *testing.T) {
	joinedAt := time.Now().UTC().Add(-40 * time.Minute)
	leftAt := time.Now().UTC()

	t.Run("computes duration from observed join", func(t *testing.T) {
		svc, m := newMeetingService()
		joined := &models.Participant{
			UID:                   "participant-1",
			MeetingUID:            "meeting-1",
			Email:                 "asha@example.com",
			ProviderParticipantID: "zoom-user-9",
			JoinedAt:              &joinedAt,
			AttendanceStatus:      models.AttendanceJoined,
		}

		m.participantRepo.On("GetByMeetingAndProviderID", mock.Anything, "meeting-1", "zoom-user-9").
			Return(joined, uint64(2), nil)
		m.participantRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Participant) bool {
			return p.AttendanceStatus == models.AttendanceLeft && p.DurationMinutes != nil && *p.DurationMinutes == 40
		}), uint64(2)).Return(nil)

		err := svc.RecordParticipantLeft(context.Background(), "meeting-1", "zoom-user-9", leftAt, "left the meeting")
		require.NoError(t, err)
		m.participantRepo.AssertExpectations(t)
	})

	t.Run("unknown participant is dropped", func(t *testing.T) {
		svc, m := newMeetingService()
		m.participantRepo.On("GetByMeetingAndProviderID", mock.Anything, "meeting-1", "zoom-user-0").
			Return(nil, uint64(0), domain.NewNotFoundError("participant not found"))

		err := svc.RecordParticipantLeft(context.Background(), "meeting-1", "zoom-user-0", leftAt, "")
		require.NoError(t, err)
		m.participantRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAttachRecording(t *testing.T) {
	svc, m := newMeetingService()
	ended := scheduledMeeting()
	ended.Status = models.MeetingStatusEnded

	m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(ended, uint64(7), nil)
	m.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(mtg *models.Meeting) bool {
		return mtg.RecordingURL == "https://zoom.us/rec/play/xyz" && mtg.RecordingPassword == "rec-pass"
	}), uint64(7)).Return(nil)
	m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

	err := svc.AttachRecording(context.Background(), "meeting-1", "https://zoom.us/rec/play/xyz", "rec-pass")
	require.NoError(t, err)
	m.meetingRepo.AssertExpectations(t)
}
