// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

// NatsMeetingRepository is the NATS KV store repository for meetings.
type NatsMeetingRepository struct {
	*NatsBaseRepository[models.Meeting]
}

// NewNatsMeetingRepository creates a new NATS KV store repository for meetings.
func NewNatsMeetingRepository(kvStore INatsKeyValue) *NatsMeetingRepository {
	return &NatsMeetingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Meeting](kvStore, "meeting"),
	}
}

var _ domain.MeetingRepository = (*NatsMeetingRepository)(nil)

func (r *NatsMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting.UID == "" {
		meeting.UID = uuid.New().String()
	}

	now := time.Now()
	meeting.CreatedAt = &now
	meeting.UpdatedAt = &now

	return r.NatsBaseRepository.Create(ctx, meeting.UID, meeting)
}

func (r *NatsMeetingRepository) Exists(ctx context.Context, meetingUID string) (bool, error) {
	return r.NatsBaseRepository.Exists(ctx, meetingUID)
}

func (r *NatsMeetingRepository) Get(ctx context.Context, meetingUID string) (*models.Meeting, error) {
	return r.NatsBaseRepository.Get(ctx, meetingUID)
}

func (r *NatsMeetingRepository) GetWithRevision(ctx context.Context, meetingUID string) (*models.Meeting, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, meetingUID)
}

// GetByBookingUID finds the meeting bound to a booking. Each booking has at
// most one meeting.
func (r *NatsMeetingRepository) GetByBookingUID(ctx context.Context, bookingUID string) (*models.Meeting, error) {
	meetings, err := r.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	for _, meeting := range meetings {
		if meeting.BookingUID == bookingUID {
			return meeting, nil
		}
	}

	return nil, domain.NewNotFoundError(fmt.Sprintf("no meeting found for booking '%s'", bookingUID))
}

// GetByPlatformMeetingID finds a meeting by its provider-assigned ID. Used by
// the webhook reconciler to correlate provider events with local state.
func (r *NatsMeetingRepository) GetByPlatformMeetingID(ctx context.Context, platform, platformMeetingID string) (*models.Meeting, error) {
	meetings, err := r.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	platform = strings.ToLower(platform)
	for _, meeting := range meetings {
		if strings.ToLower(meeting.Platform) == platform && meeting.PlatformMeetingID == platformMeetingID {
			return meeting, nil
		}
	}

	return nil, domain.NewNotFoundError(
		fmt.Sprintf("no meeting found for platform '%s' meeting ID '%s'", platform, platformMeetingID))
}

func (r *NatsMeetingRepository) Update(ctx context.Context, meeting *models.Meeting, revision uint64) error {
	now := time.Now()
	meeting.UpdatedAt = &now

	return r.NatsBaseRepository.Update(ctx, meeting.UID, meeting, revision)
}

func (r *NatsMeetingRepository) Delete(ctx context.Context, meetingUID string, revision uint64) error {
	return r.NatsBaseRepository.Delete(ctx, meetingUID, revision)
}

func (r *NatsMeetingRepository) ListAll(ctx context.Context) ([]*models.Meeting, error) {
	return r.ListEntities(ctx, "")
}
