// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/mocks"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/service"
)

type handlerMocks struct {
	meetingRepo      *mocks.MockMeetingRepository
	bookingRepo      *mocks.MockBookingRepository
	participantRepo  *mocks.MockParticipantRepository
	notificationRepo *mocks.MockNotificationRepository
	availabilityRepo *mocks.MockAvailabilityRepository
	messageBuilder   *mocks.MockMessageBuilder
}

func newHandler() (*ZoomWebhookHandler, *handlerMocks) {
	m := &handlerMocks{
		meetingRepo:      &mocks.MockMeetingRepository{},
		bookingRepo:      &mocks.MockBookingRepository{},
		participantRepo:  &mocks.MockParticipantRepository{},
		notificationRepo: &mocks.MockNotificationRepository{},
		availabilityRepo: &mocks.MockAvailabilityRepository{},
		messageBuilder:   &mocks.MockMessageBuilder{},
	}

	svc := service.NewMeetingService(
		m.meetingRepo,
		m.bookingRepo,
		m.participantRepo,
		m.notificationRepo,
		m.availabilityRepo,
		m.messageBuilder,
		&mocks.MockPlatformRegistry{},
		service.ServiceConfig{},
	)

	return NewZoomWebhookHandler(svc), m
}

func webhookMessage(t *testing.T, subject, eventType string, payload map[string]any) *mocks.MockMessage {
	t.Helper()

	data, err := json.Marshal(models.ZoomWebhookEventMessage{
		EventType: eventType,
		EventTS:   time.Now().UTC().UnixMilli(),
		Payload:   payload,
	})
	require.NoError(t, err)

	msg := &mocks.MockMessage{}
	msg.On("Subject").Return(subject)
	msg.On("Data").Return(data)
	msg.On("HasReply").Return(false)
	return msg
}

func trackedMeeting() *models.Meeting {
	return &models.Meeting{
		UID:               "meeting-1",
		BookingUID:        "booking-1",
		Platform:          models.PlatformZoom,
		PlatformMeetingID: "987654321",
		Status:            models.MeetingStatusScheduled,
	}
}

func TestZoomWebhookHandlerHandlerReady(t *testing.T) {
	handler, _ := newHandler()
	assert.True(t, handler.HandlerReady())

	assert.False(t, NewZoomWebhookHandler(nil).HandlerReady())
}

func TestHandleMeetingStarted(t *testing.T) {
	handler, m := newHandler()
	meeting := trackedMeeting()

	m.meetingRepo.On("GetByPlatformMeetingID", mock.Anything, models.PlatformZoom, "987654321").
		Return(meeting, nil)
	m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(meeting, uint64(1), nil)
	m.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(mtg *models.Meeting) bool {
		return mtg.Status == models.MeetingStatusStarted && mtg.ActualStartTime != nil
	}), uint64(1)).Return(nil)
	m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

	msg := webhookMessage(t, models.ZoomWebhookMeetingStartedSubject, models.ZoomEventMeetingStarted, map[string]any{
		"object": map[string]any{
			"id":         "987654321",
			"uuid":       "abc==",
			"start_time": time.Now().UTC().Format(time.RFC3339),
		},
	})

	handler.HandleMessage(context.Background(), msg)
	m.meetingRepo.AssertExpectations(t)
}

func TestHandleMeetingEnded(t *testing.T) {
	handler, m := newHandler()
	started := trackedMeeting()
	started.Status = models.MeetingStatusStarted
	startTime := time.Now().UTC().Add(-45 * time.Minute)
	started.ActualStartTime = &startTime

	m.meetingRepo.On("GetByPlatformMeetingID", mock.Anything, models.PlatformZoom, "987654321").
		Return(started, nil)
	m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(started, uint64(2), nil)
	m.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(mtg *models.Meeting) bool {
		return mtg.Status == models.MeetingStatusEnded
	}), uint64(2)).Return(nil)

	booking := &models.Booking{UID: "booking-1", Status: models.BookingStatusConfirmed}
	m.bookingRepo.On("GetWithRevision", mock.Anything, "booking-1").Return(booking, uint64(1), nil)
	m.bookingRepo.On("Update", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.Status == models.BookingStatusCompleted
	}), uint64(1)).Return(nil)
	m.messageBuilder.On("SendBookingUpdated", mock.Anything, mock.Anything).Return(nil)
	m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

	msg := webhookMessage(t, models.ZoomWebhookMeetingEndedSubject, models.ZoomEventMeetingEnded, map[string]any{
		"object": map[string]any{
			"id":       "987654321",
			"end_time": time.Now().UTC().Format(time.RFC3339),
		},
	})

	handler.HandleMessage(context.Background(), msg)
	m.meetingRepo.AssertExpectations(t)
	m.bookingRepo.AssertExpectations(t)
}

func TestHandleParticipantJoined(t *testing.T) {
	handler, m := newHandler()
	joinTime := time.Now().UTC().Add(-time.Minute).Truncate(time.Second)

	placeholder := &models.Participant{
		UID:        "participant-1",
		MeetingUID: "meeting-1",
		Email:      "asha@example.com",
		Role:       models.ParticipantRoleAttendee,
	}

	m.meetingRepo.On("GetByPlatformMeetingID", mock.Anything, models.PlatformZoom, "987654321").
		Return(trackedMeeting(), nil)
	m.participantRepo.On("GetByMeetingAndEmail", mock.Anything, "meeting-1", "asha@example.com").
		Return(placeholder, uint64(1), nil)
	m.participantRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Participant) bool {
		return p.AttendanceStatus == models.AttendanceJoined &&
			p.ProviderParticipantID == "zoom-user-9" &&
			p.JoinedAt != nil && p.JoinedAt.Equal(joinTime)
	}), uint64(1)).Return(nil)

	msg := webhookMessage(t, models.ZoomWebhookMeetingParticipantJoinedSubject, models.ZoomEventMeetingParticipantJoined, map[string]any{
		"object": map[string]any{
			"id": "987654321",
			"participant": map[string]any{
				"user_id":   "zoom-user-9",
				"user_name": "Asha R",
				"email":     "asha@example.com",
				"join_time": joinTime.Format(time.RFC3339),
			},
		},
	})

	handler.HandleMessage(context.Background(), msg)
	m.participantRepo.AssertExpectations(t)
}

func TestHandleParticipantLeft(t *testing.T) {
	handler, m := newHandler()
	joinTime := time.Now().UTC().Add(-30 * time.Minute).Truncate(time.Second)
	leaveTime := joinTime.Add(25 * time.Minute)

	joined := &models.Participant{
		UID:                   "participant-1",
		MeetingUID:            "meeting-1",
		Email:                 "asha@example.com",
		ProviderParticipantID: "zoom-user-9",
		JoinedAt:              &joinTime,
		AttendanceStatus:      models.AttendanceJoined,
	}

	m.meetingRepo.On("GetByPlatformMeetingID", mock.Anything, models.PlatformZoom, "987654321").
		Return(trackedMeeting(), nil)
	m.participantRepo.On("GetByMeetingAndProviderID", mock.Anything, "meeting-1", "zoom-user-9").
		Return(joined, uint64(2), nil)
	m.participantRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Participant) bool {
		return p.AttendanceStatus == models.AttendanceLeft &&
			p.DurationMinutes != nil && *p.DurationMinutes == 25
	}), uint64(2)).Return(nil)

	msg := webhookMessage(t, models.ZoomWebhookMeetingParticipantLeftSubject, models.ZoomEventMeetingParticipantLeft, map[string]any{
		"object": map[string]any{
			"id": "987654321",
			"participant": map[string]any{
				"user_id":      "zoom-user-9",
				"leave_time":   leaveTime.Format(time.RFC3339),
				"leave_reason": "left the meeting",
			},
		},
	})

	handler.HandleMessage(context.Background(), msg)
	m.participantRepo.AssertExpectations(t)
}

func TestHandleRecordingCompleted(t *testing.T) {
	handler, m := newHandler()
	ended := trackedMeeting()
	ended.Status = models.MeetingStatusEnded

	m.meetingRepo.On("GetByPlatformMeetingID", mock.Anything, models.PlatformZoom, "987654321").
		Return(ended, nil)
	m.meetingRepo.On("GetWithRevision", mock.Anything, "meeting-1").Return(ended, uint64(3), nil)
	m.meetingRepo.On("Update", mock.Anything, mock.MatchedBy(func(mtg *models.Meeting) bool {
		return mtg.RecordingURL == "https://zoom.us/rec/play/xyz" && mtg.RecordingPassword == "rec-pass"
	}), uint64(3)).Return(nil)
	m.messageBuilder.On("SendMeetingUpdated", mock.Anything, mock.Anything).Return(nil)

	msg := webhookMessage(t, models.ZoomWebhookRecordingCompletedSubject, models.ZoomEventRecordingCompleted, map[string]any{
		"password": "rec-pass",
		"object": map[string]any{
			"id":        987654321,
			"share_url": "https://zoom.us/rec/share/xyz",
			"recording_files": []map[string]any{
				{"file_type": "MP4", "play_url": "https://zoom.us/rec/play/xyz"},
			},
		},
	})

	handler.HandleMessage(context.Background(), msg)
	m.meetingRepo.AssertExpectations(t)
}

func TestHandleMessageUntrackedMeeting(t *testing.T) {
	handler, m := newHandler()

	m.meetingRepo.On("GetByPlatformMeetingID", mock.Anything, models.PlatformZoom, "555").
		Return(nil, domain.NewNotFoundError("meeting not found"))

	msg := webhookMessage(t, models.ZoomWebhookMeetingStartedSubject, models.ZoomEventMeetingStarted, map[string]any{
		"object": map[string]any{"id": "555"},
	})

	handler.HandleMessage(context.Background(), msg)
	m.meetingRepo.AssertNotCalled(t, "GetWithRevision", mock.Anything, mock.Anything)
}

func TestHandleMessageUnknownSubject(t *testing.T) {
	handler, m := newHandler()

	msg := &mocks.MockMessage{}
	msg.On("Subject").Return("disha.webhook.zoom.meeting.unknown")
	msg.On("HasReply").Return(false)

	handler.HandleMessage(context.Background(), msg)
	m.meetingRepo.AssertNotCalled(t, "GetByPlatformMeetingID", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleMessageMalformedData(t *testing.T) {
	handler, m := newHandler()

	msg := &mocks.MockMessage{}
	msg.On("Subject").Return(models.ZoomWebhookMeetingStartedSubject)
	msg.On("Data").Return([]byte("not json"))
	msg.On("HasReply").Return(false)

	handler.HandleMessage(context.Background(), msg)
	m.meetingRepo.AssertNotCalled(t, "GetByPlatformMeetingID", mock.Anything, mock.Anything, mock.Anything)
}
