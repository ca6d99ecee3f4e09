// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

// NatsAvailabilityRepository is the NATS KV store repository for mentor
// availability slots.
type NatsAvailabilityRepository struct {
	*NatsBaseRepository[models.AvailabilitySlot]
}

// NewNatsAvailabilityRepository creates a new NATS KV store repository for availability slots.
func NewNatsAvailabilityRepository(kvStore INatsKeyValue) *NatsAvailabilityRepository {
	return &NatsAvailabilityRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.AvailabilitySlot](kvStore, "availability slot"),
	}
}

var _ domain.AvailabilityRepository = (*NatsAvailabilityRepository)(nil)

func (r *NatsAvailabilityRepository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot.UID == "" {
		slot.UID = uuid.New().String()
	}

	now := time.Now()
	slot.CreatedAt = &now

	return r.NatsBaseRepository.Create(ctx, slot.UID, slot)
}

func (r *NatsAvailabilityRepository) Get(ctx context.Context, slotUID string) (*models.AvailabilitySlot, error) {
	return r.NatsBaseRepository.Get(ctx, slotUID)
}

func (r *NatsAvailabilityRepository) GetWithRevision(ctx context.Context, slotUID string) (*models.AvailabilitySlot, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, slotUID)
}

func (r *NatsAvailabilityRepository) Update(ctx context.Context, slot *models.AvailabilitySlot, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, slot.UID, slot, revision)
}

func (r *NatsAvailabilityRepository) Delete(ctx context.Context, slotUID string, revision uint64) error {
	return r.NatsBaseRepository.Delete(ctx, slotUID, revision)
}

func (r *NatsAvailabilityRepository) ListByMentor(ctx context.Context, mentorUID string) ([]*models.AvailabilitySlot, error) {
	slots, err := r.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	var matched []*models.AvailabilitySlot
	for _, slot := range slots {
		if slot.MentorUID == mentorUID {
			matched = append(matched, slot)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime.Before(matched[j].StartTime)
	})

	return matched, nil
}
