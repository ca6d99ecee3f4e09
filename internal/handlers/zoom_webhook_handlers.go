// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package handlers consumes NATS messages and applies them to local state.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/logging"
	"github.com/mosharaf6/Disha/internal/service"
	"github.com/mosharaf6/Disha/pkg/redaction"
)

// ZoomWebhookHandler applies verified Zoom webhook events to local state.
// Events arrive on NATS subjects after the HTTP layer has validated the
// delivery signature.
type ZoomWebhookHandler struct {
	meetingService *service.MeetingService
}

// NewZoomWebhookHandler creates a new ZoomWebhookHandler.
func NewZoomWebhookHandler(meetingService *service.MeetingService) *ZoomWebhookHandler {
	return &ZoomWebhookHandler{
		meetingService: meetingService,
	}
}

// HandlerReady implements [domain.MessageHandler].
func (h *ZoomWebhookHandler) HandlerReady() bool {
	return h.meetingService != nil && h.meetingService.ServiceReady()
}

// HandleMessage implements [domain.MessageHandler].
func (h *ZoomWebhookHandler) HandleMessage(ctx context.Context, msg domain.Message) {
	subject := msg.Subject()
	ctx = logging.AppendCtx(ctx, slog.String("subject", subject))
	slog.DebugContext(ctx, "handling NATS message")

	handlers := map[string]func(ctx context.Context, event models.ZoomWebhookEventMessage) error{
		models.ZoomWebhookMeetingStartedSubject:           h.handleMeetingStarted,
		models.ZoomWebhookMeetingEndedSubject:             h.handleMeetingEnded,
		models.ZoomWebhookMeetingParticipantJoinedSubject: h.handleParticipantJoined,
		models.ZoomWebhookMeetingParticipantLeftSubject:   h.handleParticipantLeft,
		models.ZoomWebhookRecordingCompletedSubject:       h.handleRecordingCompleted,
	}

	handler, ok := handlers[subject]
	if !ok {
		slog.WarnContext(ctx, "unknown subject")
		h.respond(ctx, msg, nil)
		return
	}

	var event models.ZoomWebhookEventMessage
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		slog.ErrorContext(ctx, "failed to unmarshal Zoom webhook event", logging.ErrKey, err)
		h.respond(ctx, msg, nil)
		return
	}

	ctx = logging.AppendCtx(ctx, slog.String("event_type", event.EventType))

	if err := handler(ctx, event); err != nil {
		slog.ErrorContext(ctx, "error handling webhook event", logging.ErrKey, err)
		h.respond(ctx, msg, nil)
		return
	}

	slog.InfoContext(ctx, "processed webhook event")
	h.respond(ctx, msg, nil)
}

func (h *ZoomWebhookHandler) respond(ctx context.Context, msg domain.Message, response []byte) {
	if !msg.HasReply() {
		return
	}
	if err := msg.Respond(response); err != nil {
		slog.ErrorContext(ctx, "error responding to NATS message", logging.ErrKey, err)
	}
}

// findMeeting resolves the local meeting for a provider meeting id. A nil
// meeting with a nil error means the event belongs to a meeting this service
// does not track; callers log and drop.
func (h *ZoomWebhookHandler) findMeeting(ctx context.Context, platformMeetingID string) (*models.Meeting, error) {
	meeting, err := h.meetingService.GetMeetingByPlatformMeetingID(ctx, models.PlatformZoom, platformMeetingID)
	if err != nil {
		if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
			slog.WarnContext(ctx, "no meeting tracked for provider meeting id, dropping event",
				"platform_meeting_id", platformMeetingID)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return meeting, nil
}

// handleMeetingStarted moves the meeting to started.
func (h *ZoomWebhookHandler) handleMeetingStarted(ctx context.Context, event models.ZoomWebhookEventMessage) error {
	payload, err := event.ToMeetingStartedPayload()
	if err != nil {
		return fmt.Errorf("invalid meeting.started payload: %w", err)
	}

	meeting, err := h.findMeeting(ctx, payload.Object.ID)
	if err != nil || meeting == nil {
		return err
	}

	_, err = h.meetingService.UpdateMeetingStatus(ctx, meeting.UID, "", models.MeetingStatusStarted, service.TriggerReconciler)
	return err
}

// handleMeetingEnded moves the meeting to ended.
func (h *ZoomWebhookHandler) handleMeetingEnded(ctx context.Context, event models.ZoomWebhookEventMessage) error {
	payload, err := event.ToMeetingEndedPayload()
	if err != nil {
		return fmt.Errorf("invalid meeting.ended payload: %w", err)
	}

	meeting, err := h.findMeeting(ctx, payload.Object.ID)
	if err != nil || meeting == nil {
		return err
	}

	_, err = h.meetingService.UpdateMeetingStatus(ctx, meeting.UID, "", models.MeetingStatusEnded, service.TriggerReconciler)
	return err
}

// handleParticipantJoined records a join observation.
func (h *ZoomWebhookHandler) handleParticipantJoined(ctx context.Context, event models.ZoomWebhookEventMessage) error {
	payload, err := event.ToParticipantJoinedPayload()
	if err != nil {
		return fmt.Errorf("invalid participant_joined payload: %w", err)
	}

	participant := payload.Object.Participant
	slog.DebugContext(ctx, "participant joined",
		"participant_email", redaction.RedactEmail(participant.Email),
		"participant_name", participant.UserName)

	meeting, err := h.findMeeting(ctx, payload.Object.ID)
	if err != nil || meeting == nil {
		return err
	}

	joinedAt := h.eventTime(participant.JoinTime, event.EventTS)

	return h.meetingService.RecordParticipantJoined(ctx, meeting.UID, participant.Email, participant.UserID, participant.UserName, joinedAt)
}

// handleParticipantLeft records a leave observation.
func (h *ZoomWebhookHandler) handleParticipantLeft(ctx context.Context, event models.ZoomWebhookEventMessage) error {
	payload, err := event.ToParticipantLeftPayload()
	if err != nil {
		return fmt.Errorf("invalid participant_left payload: %w", err)
	}

	participant := payload.Object.Participant
	slog.DebugContext(ctx, "participant left",
		"participant_email", redaction.RedactEmail(participant.Email),
		"leave_reason", participant.LeaveReason)

	meeting, err := h.findMeeting(ctx, payload.Object.ID)
	if err != nil || meeting == nil {
		return err
	}

	leftAt := h.eventTime(participant.LeaveTime, event.EventTS)

	return h.meetingService.RecordParticipantLeft(ctx, meeting.UID, participant.UserID, leftAt, participant.LeaveReason)
}

// handleRecordingCompleted stores the recording link on the meeting.
func (h *ZoomWebhookHandler) handleRecordingCompleted(ctx context.Context, event models.ZoomWebhookEventMessage) error {
	payload, err := event.ToRecordingCompletedPayload()
	if err != nil {
		return fmt.Errorf("invalid recording.completed payload: %w", err)
	}

	meetingIDStr := strconv.FormatInt(payload.Object.ID, 10)
	meeting, err := h.findMeeting(ctx, meetingIDStr)
	if err != nil || meeting == nil {
		return err
	}

	recordingURL := ""
	for _, file := range payload.Object.RecordingFiles {
		if file.PlayURL != "" {
			recordingURL = file.PlayURL
			break
		}
	}
	if recordingURL == "" {
		recordingURL = payload.Object.ShareURL
	}
	if recordingURL == "" {
		slog.WarnContext(ctx, "recording completed event carried no playable file, dropping")
		return nil
	}

	return h.meetingService.AttachRecording(ctx, meeting.UID, recordingURL, payload.PlaybackPassword)
}

// eventTime parses a provider timestamp, falling back to the event's own
// timestamp when the field is missing or malformed.
func (h *ZoomWebhookHandler) eventTime(raw string, eventTS int64) time.Time {
	if raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC()
		}
	}
	if eventTS > 0 {
		return time.UnixMilli(eventTS).UTC()
	}
	return time.Now().UTC()
}
