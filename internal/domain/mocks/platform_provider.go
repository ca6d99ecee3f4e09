// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

// MockPlatformProvider implements PlatformProvider for testing
type MockPlatformProvider struct {
	mock.Mock
}

func (m *MockPlatformProvider) CreateMeeting(ctx context.Context, booking *models.Booking, meeting *models.Meeting) (*domain.CreateMeetingResult, error) {
	args := m.Called(ctx, booking, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateMeetingResult), args.Error(1)
}

func (m *MockPlatformProvider) DeleteMeeting(ctx context.Context, platformMeetingID string) error {
	args := m.Called(ctx, platformMeetingID)
	return args.Error(0)
}

// MockPlatformRegistry implements PlatformRegistry for testing
type MockPlatformRegistry struct {
	mock.Mock
}

func (m *MockPlatformRegistry) GetProvider(platform string) (domain.PlatformProvider, bool) {
	args := m.Called(platform)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(domain.PlatformProvider), args.Bool(1)
}
