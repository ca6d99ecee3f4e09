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
	"github.com/mosharaf6/Disha/pkg/redaction"
)

// GetMeetingByPlatformMeetingID looks a meeting up by the provider's meeting
// id. Used by the webhook reconciler, which only knows provider identifiers.
func (s *MeetingService) GetMeetingByPlatformMeetingID(ctx context.Context, platform, platformMeetingID string) (*models.Meeting, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("meeting service not initialized")
	}

	return s.MeetingRepository.GetByPlatformMeetingID(ctx, platform, platformMeetingID)
}

// RecordParticipantJoined applies a provider join observation. The
// participant is matched by email against the placeholder rows; a join from
// an address outside the booking gets a new guest row so attendance is not
// lost.
func (s *MeetingService) RecordParticipantJoined(ctx context.Context, meetingUID, email, providerParticipantID, displayName string, at time.Time) error {
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("participant_email", redaction.RedactEmail(email)))

	for attempt := 0; attempt < 2; attempt++ {
		participant, revision, err := s.ParticipantRepository.GetByMeetingAndEmail(ctx, meetingUID, email)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				return s.createGuestParticipant(ctx, meetingUID, email, providerParticipantID, displayName, at)
			}
			return err
		}

		participant.MarkJoined(providerParticipantID, at)
		if displayName != "" {
			participant.DisplayName = displayName
		}

		err = s.ParticipantRepository.Update(ctx, participant, revision)
		if err == nil {
			slog.InfoContext(ctx, "recorded participant join", "participant_uid", participant.UID)
			return nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return err
		}
		slog.WarnContext(ctx, "revision conflict recording participant join, retrying")
	}

	return domain.NewConflictError("participant was modified concurrently")
}

// createGuestParticipant records attendance for someone who joined without a
// placeholder row, for example from a forwarded invite.
func (s *MeetingService) createGuestParticipant(ctx context.Context, meetingUID, email, providerParticipantID, displayName string, at time.Time) error {
	slog.WarnContext(ctx, "join from unknown participant, creating guest row")

	guest := &models.Participant{
		MeetingUID:  meetingUID,
		DisplayName: displayName,
		Email:       email,
		Role:        models.ParticipantRoleAttendee,
	}
	guest.MarkJoined(providerParticipantID, at)

	return s.ParticipantRepository.Create(ctx, guest)
}

// RecordParticipantLeft applies a provider leave observation, matched by the
// provider participant id assigned at join time. Leaves with no matching join
// are logged and dropped.
func (s *MeetingService) RecordParticipantLeft(ctx context.Context, meetingUID, providerParticipantID string, at time.Time, reason string) error {
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))
	ctx = logging.AppendCtx(ctx, slog.String("provider_participant_id", providerParticipantID))

	for attempt := 0; attempt < 2; attempt++ {
		participant, revision, err := s.ParticipantRepository.GetByMeetingAndProviderID(ctx, meetingUID, providerParticipantID)
		if err != nil {
			if domain.GetErrorType(err) == domain.ErrorTypeNotFound {
				slog.WarnContext(ctx, "leave event for unknown participant, dropping", "leave_reason", reason)
				return nil
			}
			return err
		}

		participant.MarkLeft(at)

		err = s.ParticipantRepository.Update(ctx, participant, revision)
		if err == nil {
			slog.InfoContext(ctx, "recorded participant leave",
				"participant_uid", participant.UID,
				"leave_reason", reason)
			return nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return err
		}
		slog.WarnContext(ctx, "revision conflict recording participant leave, retrying")
	}

	return domain.NewConflictError("participant was modified concurrently")
}

// AttachRecording stores the recording link and passcode on the meeting.
// Repeated deliveries overwrite with the same values, so the write is
// idempotent.
func (s *MeetingService) AttachRecording(ctx context.Context, meetingUID, recordingURL, recordingPassword string) error {
	ctx = logging.AppendCtx(ctx, slog.String("meeting_uid", meetingUID))

	for attempt := 0; attempt < 2; attempt++ {
		meeting, revision, err := s.MeetingRepository.GetWithRevision(ctx, meetingUID)
		if err != nil {
			return err
		}

		meeting.RecordingURL = recordingURL
		meeting.RecordingPassword = recordingPassword
		now := time.Now().UTC()
		meeting.UpdatedAt = &now

		err = s.MeetingRepository.Update(ctx, meeting, revision)
		if err == nil {
			slog.InfoContext(ctx, "attached recording to meeting")

			if sendErr := s.MessageBuilder.SendMeetingUpdated(ctx, models.MeetingUpdatedMessage{
				MeetingUID: meeting.UID,
				BookingUID: meeting.BookingUID,
				Status:     meeting.Status,
				UpdatedAt:  now,
			}); sendErr != nil {
				slog.ErrorContext(ctx, "failed to send meeting updated message", logging.ErrKey, sendErr)
			}
			return nil
		}
		if domain.GetErrorType(err) != domain.ErrorTypeConflict {
			return err
		}
		slog.WarnContext(ctx, "revision conflict attaching recording, retrying")
	}

	return domain.NewConflictError("meeting was modified concurrently")
}
