// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// MockNotificationRepository implements NotificationRepository for testing
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) Get(ctx context.Context, notificationUID string) (*models.Notification, error) {
	args := m.Called(ctx, notificationUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetWithRevision(ctx context.Context, notificationUID string) (*models.Notification, uint64, error) {
	args := m.Called(ctx, notificationUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Notification), args.Get(1).(uint64), args.Error(2)
}

func (m *MockNotificationRepository) Update(ctx context.Context, notification *models.Notification, revision uint64) error {
	args := m.Called(ctx, notification, revision)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByBooking(ctx context.Context, bookingUID string) ([]*models.Notification, error) {
	args := m.Called(ctx, bookingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}
