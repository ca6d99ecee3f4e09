// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// MockParticipantRepository implements ParticipantRepository for testing
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockParticipantRepository) Get(ctx context.Context, participantUID string) (*models.Participant, error) {
	args := m.Called(ctx, participantUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participant), args.Error(1)
}

func (m *MockParticipantRepository) GetWithRevision(ctx context.Context, participantUID string) (*models.Participant, uint64, error) {
	args := m.Called(ctx, participantUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Participant), args.Get(1).(uint64), args.Error(2)
}

func (m *MockParticipantRepository) GetByMeetingAndEmail(ctx context.Context, meetingUID, email string) (*models.Participant, uint64, error) {
	args := m.Called(ctx, meetingUID, email)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Participant), args.Get(1).(uint64), args.Error(2)
}

func (m *MockParticipantRepository) GetByMeetingAndProviderID(ctx context.Context, meetingUID, providerParticipantID string) (*models.Participant, uint64, error) {
	args := m.Called(ctx, meetingUID, providerParticipantID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Participant), args.Get(1).(uint64), args.Error(2)
}

func (m *MockParticipantRepository) Update(ctx context.Context, participant *models.Participant, revision uint64) error {
	args := m.Called(ctx, participant, revision)
	return args.Error(0)
}

func (m *MockParticipantRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Participant, error) {
	args := m.Called(ctx, meetingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participant), args.Error(1)
}
