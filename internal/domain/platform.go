// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import (
	"context"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// CreateMeetingResult carries the provider-assigned attributes of a freshly
// created platform meeting.
type CreateMeetingResult struct {
	PlatformMeetingID  string
	PlatformMeetingUUID string
	HostProviderUserID string
	JoinURL            string
	StartURL           string
	Password           string
}

// PlatformProvider is the interface for video conference platform integrations.
type PlatformProvider interface {
	// CreateMeeting provisions a meeting on the platform for the given booking.
	CreateMeeting(ctx context.Context, booking *models.Booking, meeting *models.Meeting) (*CreateMeetingResult, error)
	// DeleteMeeting removes the platform meeting.
	DeleteMeeting(ctx context.Context, platformMeetingID string) error
}

// PlatformRegistry resolves a provider by platform name.
type PlatformRegistry interface {
	GetProvider(platform string) (PlatformProvider, bool)
}
