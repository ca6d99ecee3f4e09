// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package zoom adapts the Zoom API client to the platform provider contract.
package zoom

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/akamensky/base58"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/infrastructure/zoom/api"
	"github.com/mosharaf6/Disha/internal/logging"
)

// userCacheTTL bounds how long the resolved host user is reused before the
// account user list is fetched again.
const userCacheTTL = 15 * time.Minute

// ProviderConfig holds the meeting defaults applied to every provisioned session.
type ProviderConfig struct {
	WaitingRoomEnabled bool
	MuteOnEntry        bool
	AutoRecording      bool
	Timezone           string
}

// Provider implements the platform provider contract on top of the Zoom API.
type Provider struct {
	client api.ClientAPI
	config ProviderConfig

	mu           sync.Mutex
	cachedUser   *api.ZoomUser
	cachedUserAt time.Time
}

var _ domain.PlatformProvider = (*Provider)(nil)

// NewProvider creates a Zoom platform provider.
func NewProvider(client api.ClientAPI, config ProviderConfig) *Provider {
	if config.Timezone == "" {
		config.Timezone = "UTC"
	}
	return &Provider{
		client: client,
		config: config,
	}
}

// getHostUser returns the first active user on the Zoom account, cached for
// a short period so each booking does not trigger a user list call.
func (p *Provider) getHostUser(ctx context.Context) (*api.ZoomUser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cachedUser != nil && time.Since(p.cachedUserAt) < userCacheTTL {
		return p.cachedUser, nil
	}

	users, err := p.client.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list Zoom users: %w", err)
	}
	for i := range users {
		if users[i].Status == "active" {
			p.cachedUser = &users[i]
			p.cachedUserAt = time.Now()
			return p.cachedUser, nil
		}
	}
	return nil, errors.New("no active Zoom user available to host meetings")
}

// CreateMeeting provisions a scheduled Zoom meeting for the booking.
func (p *Provider) CreateMeeting(ctx context.Context, booking *models.Booking, meeting *models.Meeting) (*domain.CreateMeetingResult, error) {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "create_meeting"))

	// A caller-chosen host wins; otherwise fall back to the first active
	// account user.
	hostID := meeting.HostProviderUserID
	if hostID == "" {
		host, err := p.getHostUser(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve Zoom host user", logging.ErrKey, err)
			return nil, domain.NewUpstreamError("failed to resolve meeting host", err)
		}
		hostID = host.ID
	}

	req := p.buildCreateMeetingRequest(booking, meeting)

	resp, err := p.client.CreateMeeting(ctx, hostID, req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create Zoom meeting", logging.ErrKey, err)
		return nil, domain.NewUpstreamError("failed to create meeting on platform", err)
	}

	password := resp.Password
	if password == "" {
		password, err = generatePassword()
		if err != nil {
			return nil, domain.NewInternalError("failed to generate meeting password", err)
		}
	}

	slog.InfoContext(ctx, "created Zoom meeting",
		"zoom_meeting_id", resp.ID,
		"topic", resp.Topic,
	)

	return &domain.CreateMeetingResult{
		PlatformMeetingID:   strconv.FormatInt(resp.ID, 10),
		PlatformMeetingUUID: resp.UUID,
		HostProviderUserID:  hostID,
		JoinURL:             resp.JoinURL,
		StartURL:            resp.StartURL,
		Password:            password,
	}, nil
}

// DeleteMeeting removes the Zoom meeting. A meeting that is already gone on
// the Zoom side is treated as deleted.
func (p *Provider) DeleteMeeting(ctx context.Context, platformMeetingID string) error {
	ctx = logging.AppendCtx(ctx, slog.String("zoom_operation", "delete_meeting"))
	ctx = logging.AppendCtx(ctx, slog.String("zoom_meeting_id", platformMeetingID))

	err := p.client.DeleteMeeting(ctx, platformMeetingID)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			slog.WarnContext(ctx, "Zoom meeting not found, may have been already deleted")
			return nil
		}
		slog.ErrorContext(ctx, "failed to delete Zoom meeting", logging.ErrKey, err)
		return domain.NewUpstreamError("failed to delete meeting on platform", err)
	}

	slog.InfoContext(ctx, "deleted Zoom meeting")
	return nil
}

// buildCreateMeetingRequest builds a Zoom API request from the booking and
// meeting models.
func (p *Provider) buildCreateMeetingRequest(booking *models.Booking, meeting *models.Meeting) *api.CreateMeetingRequest {
	autoRecording := "none"
	if meeting.AutoRecording {
		autoRecording = "cloud"
	}

	return &api.CreateMeetingRequest{
		Topic:     buildTopic(booking),
		Type:      api.MeetingTypeScheduled,
		StartTime: meeting.ScheduledStartTime.UTC().Format(time.RFC3339),
		Duration:  meeting.ScheduledDuration,
		Timezone:  p.config.Timezone,
		Agenda:    buildAgenda(booking),
		Settings: &api.MeetingSettings{
			HostVideo:        true,
			ParticipantVideo: true,
			JoinBeforeHost:   false,
			MuteUponEntry:    meeting.MuteOnEntry,
			WaitingRoom:      meeting.WaitingRoomEnabled,
			Audio:            "both",
			AutoRecording:    autoRecording,
			ApprovalType:     0,
		},
	}
}

// buildTopic builds the meeting topic shown to both parties.
func buildTopic(booking *models.Booking) string {
	if booking.Topic != "" {
		return fmt.Sprintf("Mentorship session: %s", booking.Topic)
	}
	return fmt.Sprintf("Mentorship session: %s & %s", booking.LearnerName, booking.MentorName)
}

// buildAgenda builds the meeting agenda from the learner's message.
func buildAgenda(booking *models.Booking) string {
	if booking.Message == "" {
		return ""
	}
	return fmt.Sprintf("Session request from %s: %s", booking.LearnerName, booking.Message)
}

// generatePassword produces a random base58 passcode for meetings where Zoom
// did not assign one. Base58 avoids characters Zoom rejects in passcodes.
func generatePassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	pass := base58.Encode(buf)
	if len(pass) > 10 {
		pass = pass[:10]
	}
	return pass, nil
}
