// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package api

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClientAPI implements ClientAPI for testing
type MockClientAPI struct {
	mock.Mock
}

var _ ClientAPI = (*MockClientAPI)(nil)

func (m *MockClientAPI) CreateMeeting(ctx context.Context, userID string, request *CreateMeetingRequest) (*CreateMeetingResponse, error) {
	args := m.Called(ctx, userID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CreateMeetingResponse), args.Error(1)
}

func (m *MockClientAPI) DeleteMeeting(ctx context.Context, meetingID string) error {
	args := m.Called(ctx, meetingID)
	return args.Error(0)
}

func (m *MockClientAPI) GetUsers(ctx context.Context) ([]ZoomUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ZoomUser), args.Error(1)
}
