// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/logging"
)

// AvailabilityService manages mentor availability slots.
type AvailabilityService struct {
	AvailabilityRepository domain.AvailabilityRepository
	Config                 ServiceConfig
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(availabilityRepository domain.AvailabilityRepository, config ServiceConfig) *AvailabilityService {
	return &AvailabilityService{
		AvailabilityRepository: availabilityRepository,
		Config:                 config,
	}
}

// ServiceReady checks if the service is ready for use.
func (s *AvailabilityService) ServiceReady() bool {
	return s.AvailabilityRepository != nil
}

// PublishSlot creates a new bookable slot. Only the mentor may publish their
// own availability.
func (s *AvailabilityService) PublishSlot(ctx context.Context, slot *models.AvailabilitySlot, requester string) (*models.AvailabilitySlot, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("availability service not initialized")
	}

	if slot == nil || slot.MentorUID == "" {
		return nil, domain.NewValidationError("mentor is required")
	}
	if slot.MentorUID != requester {
		slog.WarnContext(ctx, "requester may only publish their own availability", "requester", requester)
		return nil, domain.NewForbiddenError("only the mentor may publish their availability")
	}

	now := time.Now().UTC()
	if !slot.StartTime.After(now) {
		return nil, domain.NewValidationError("slot must start in the future")
	}
	if !slot.EndTime.After(slot.StartTime) {
		return nil, domain.NewValidationError("slot end time must be after start time")
	}
	switch slot.Duration {
	case "", models.DurationCategoryQuarterHour, models.DurationCategoryHalfHour, models.DurationCategoryFullHour:
	default:
		return nil, domain.NewValidationError("unknown duration category")
	}

	slot.Booked = false

	if err := s.AvailabilityRepository.Create(ctx, slot); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "published availability slot",
		"slot_uid", slot.UID,
		"mentor_uid", slot.MentorUID,
		"start_time", slot.StartTime)

	return slot, nil
}

// ListOpenSlots returns the mentor's slots that can still be booked.
func (s *AvailabilityService) ListOpenSlots(ctx context.Context, mentorUID string) ([]*models.AvailabilitySlot, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("availability service not initialized")
	}

	slots, err := s.AvailabilityRepository.ListByMentor(ctx, mentorUID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	open := make([]*models.AvailabilitySlot, 0, len(slots))
	for _, slot := range slots {
		if slot.Open(now) {
			open = append(open, slot)
		}
	}

	return open, nil
}

// RemoveSlot deletes an unbooked slot. Only the owning mentor may remove it.
func (s *AvailabilityService) RemoveSlot(ctx context.Context, slotUID, requester string) error {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return domain.NewUnavailableError("availability service not initialized")
	}

	ctx = logging.AppendCtx(ctx, slog.String("slot_uid", slotUID))

	slot, revision, err := s.AvailabilityRepository.GetWithRevision(ctx, slotUID)
	if err != nil {
		return err
	}

	if slot.MentorUID != requester {
		slog.WarnContext(ctx, "requester may only remove their own availability", "requester", requester)
		return domain.NewForbiddenError("only the mentor may remove their availability")
	}
	if slot.Booked {
		return domain.NewPreconditionError("slot is booked and cannot be removed")
	}

	return s.AvailabilityRepository.Delete(ctx, slotUID, revision)
}
