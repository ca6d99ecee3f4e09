// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// MockAvailabilityRepository implements AvailabilityRepository for testing
type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Get(ctx context.Context, slotUID string) (*models.AvailabilitySlot, error) {
	args := m.Called(ctx, slotUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilitySlot), args.Error(1)
}

func (m *MockAvailabilityRepository) GetWithRevision(ctx context.Context, slotUID string) (*models.AvailabilitySlot, uint64, error) {
	args := m.Called(ctx, slotUID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(uint64), args.Error(2)
	}
	return args.Get(0).(*models.AvailabilitySlot), args.Get(1).(uint64), args.Error(2)
}

func (m *MockAvailabilityRepository) Update(ctx context.Context, slot *models.AvailabilitySlot, revision uint64) error {
	args := m.Called(ctx, slot, revision)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Delete(ctx context.Context, slotUID string, revision uint64) error {
	args := m.Called(ctx, slotUID, revision)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ListByMentor(ctx context.Context, mentorUID string) ([]*models.AvailabilitySlot, error) {
	args := m.Called(ctx, mentorUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AvailabilitySlot), args.Error(1)
}
