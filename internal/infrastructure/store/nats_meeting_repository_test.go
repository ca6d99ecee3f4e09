// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

func testStoreMeeting() *models.Meeting {
	return &models.Meeting{
		BookingUID:         "booking-1",
		Platform:           models.PlatformZoom,
		PlatformMeetingID:  "987654321",
		JoinURL:            "https://zoom.us/j/987654321",
		ScheduledStartTime: time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
		ScheduledDuration:  60,
		Status:             models.MeetingStatusScheduled,
	}
}

func TestMeetingRepositoryCreateAndGet(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)
	ctx := context.Background()

	meeting := testStoreMeeting()
	require.NoError(t, repo.Create(ctx, meeting))
	assert.NotEmpty(t, meeting.UID)
	assert.NotNil(t, meeting.CreatedAt)

	got, revision, err := repo.GetWithRevision(ctx, meeting.UID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), revision)
	assert.Equal(t, "booking-1", got.BookingUID)
	assert.Equal(t, models.MeetingStatusScheduled, got.Status)
}

func TestMeetingRepositoryGetNotFound(t *testing.T) {
	repo := NewNatsMeetingRepository(newMockNatsKeyValue())

	_, err := repo.Get(context.Background(), "missing")
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestMeetingRepositoryUpdateRevisionConflict(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)
	ctx := context.Background()

	meeting := testStoreMeeting()
	require.NoError(t, repo.Create(ctx, meeting))

	got, revision, err := repo.GetWithRevision(ctx, meeting.UID)
	require.NoError(t, err)

	got.Status = models.MeetingStatusStarted
	require.NoError(t, repo.Update(ctx, got, revision))

	// A second writer holding the stale revision must get a conflict.
	got.Status = models.MeetingStatusEnded
	err = repo.Update(ctx, got, revision)
	assert.Equal(t, domain.ErrorTypeConflict, domain.GetErrorType(err))
}

func TestMeetingRepositoryGetByBookingUID(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)
	ctx := context.Background()

	meeting := testStoreMeeting()
	require.NoError(t, repo.Create(ctx, meeting))

	other := testStoreMeeting()
	other.BookingUID = "booking-2"
	other.PlatformMeetingID = "111"
	require.NoError(t, repo.Create(ctx, other))

	got, err := repo.GetByBookingUID(ctx, "booking-1")
	require.NoError(t, err)
	assert.Equal(t, meeting.UID, got.UID)

	_, err = repo.GetByBookingUID(ctx, "booking-3")
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestMeetingRepositoryGetByPlatformMeetingID(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)
	ctx := context.Background()

	meeting := testStoreMeeting()
	require.NoError(t, repo.Create(ctx, meeting))

	got, err := repo.GetByPlatformMeetingID(ctx, "ZOOM", "987654321")
	require.NoError(t, err)
	assert.Equal(t, meeting.UID, got.UID)

	_, err = repo.GetByPlatformMeetingID(ctx, "zoom", "000")
	assert.Equal(t, domain.ErrorTypeNotFound, domain.GetErrorType(err))
}

func TestMeetingRepositoryNotReady(t *testing.T) {
	repo := NewNatsMeetingRepository(nil)

	err := repo.Create(context.Background(), testStoreMeeting())
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))

	_, err = repo.ListAll(context.Background())
	assert.Equal(t, domain.ErrorTypeUnavailable, domain.GetErrorType(err))
}

func TestMeetingRepositoryDelete(t *testing.T) {
	kv := newMockNatsKeyValue()
	repo := NewNatsMeetingRepository(kv)
	ctx := context.Background()

	meeting := testStoreMeeting()
	require.NoError(t, repo.Create(ctx, meeting))

	_, revision, err := repo.GetWithRevision(ctx, meeting.UID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, meeting.UID, revision))

	exists, err := repo.Exists(ctx, meeting.UID)
	require.NoError(t, err)
	assert.False(t, exists)
}
