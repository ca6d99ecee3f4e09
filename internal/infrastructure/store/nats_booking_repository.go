// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

// NatsBookingRepository is the NATS KV store repository for bookings.
type NatsBookingRepository struct {
	*NatsBaseRepository[models.Booking]
}

// NewNatsBookingRepository creates a new NATS KV store repository for bookings.
func NewNatsBookingRepository(kvStore INatsKeyValue) *NatsBookingRepository {
	return &NatsBookingRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Booking](kvStore, "booking"),
	}
}

var _ domain.BookingRepository = (*NatsBookingRepository)(nil)

func (r *NatsBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.UID == "" {
		booking.UID = uuid.New().String()
	}

	now := time.Now()
	booking.CreatedAt = &now
	booking.UpdatedAt = &now

	return r.NatsBaseRepository.Create(ctx, booking.UID, booking)
}

func (r *NatsBookingRepository) Exists(ctx context.Context, bookingUID string) (bool, error) {
	return r.NatsBaseRepository.Exists(ctx, bookingUID)
}

func (r *NatsBookingRepository) Get(ctx context.Context, bookingUID string) (*models.Booking, error) {
	return r.NatsBaseRepository.Get(ctx, bookingUID)
}

func (r *NatsBookingRepository) GetWithRevision(ctx context.Context, bookingUID string) (*models.Booking, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, bookingUID)
}

func (r *NatsBookingRepository) Update(ctx context.Context, booking *models.Booking, revision uint64) error {
	now := time.Now()
	booking.UpdatedAt = &now

	return r.NatsBaseRepository.Update(ctx, booking.UID, booking, revision)
}

func (r *NatsBookingRepository) ListAll(ctx context.Context) ([]*models.Booking, error) {
	return r.ListEntities(ctx, "")
}

func (r *NatsBookingRepository) ListByParticipant(ctx context.Context, userUID string) ([]*models.Booking, error) {
	bookings, err := r.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	var matched []*models.Booking
	for _, booking := range bookings {
		if booking.IsParty(userUID) {
			matched = append(matched, booking)
		}
	}
	return matched, nil
}
