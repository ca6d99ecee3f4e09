// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// MockBookingRepository implements BookingRepository for testing
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Exists(ctx context.Context, bookingUID string) (bool, error) {
	args := m.Called(ctx, bookingUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) Get(ctx context.Context, bookingUID string) (*models.Booking, error) {
	args := m.Called(ctx, bookingUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetWithRevision(ctx context.Context, bookingUID string) (*models.Booking, uint64, error) {
	args := m.Called(ctx, bookingUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.Booking), args.Get(1).(uint64), args.Error(2)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *models.Booking, revision uint64) error {
	args := m.Called(ctx, booking, revision)
	return args.Error(0)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]*models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByParticipant(ctx context.Context, userUID string) ([]*models.Booking, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
