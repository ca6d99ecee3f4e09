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

// NatsNotificationRepository is the NATS KV store repository for scheduled
// notifications.
type NatsNotificationRepository struct {
	*NatsBaseRepository[models.Notification]
}

// NewNatsNotificationRepository creates a new NATS KV store repository for notifications.
func NewNatsNotificationRepository(kvStore INatsKeyValue) *NatsNotificationRepository {
	return &NatsNotificationRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Notification](kvStore, "notification"),
	}
}

var _ domain.NotificationRepository = (*NatsNotificationRepository)(nil)

func (r *NatsNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.UID == "" {
		notification.UID = uuid.New().String()
	}

	now := time.Now()
	notification.CreatedAt = &now

	return r.NatsBaseRepository.Create(ctx, notification.UID, notification)
}

func (r *NatsNotificationRepository) Get(ctx context.Context, notificationUID string) (*models.Notification, error) {
	return r.NatsBaseRepository.Get(ctx, notificationUID)
}

func (r *NatsNotificationRepository) GetWithRevision(ctx context.Context, notificationUID string) (*models.Notification, uint64, error) {
	return r.NatsBaseRepository.GetWithRevision(ctx, notificationUID)
}

func (r *NatsNotificationRepository) Update(ctx context.Context, notification *models.Notification, revision uint64) error {
	return r.NatsBaseRepository.Update(ctx, notification.UID, notification, revision)
}

func (r *NatsNotificationRepository) ListByBooking(ctx context.Context, bookingUID string) ([]*models.Notification, error) {
	notifications, err := r.ListEntities(ctx, "")
	if err != nil {
		return nil, err
	}

	var matched []*models.Notification
	for _, notification := range notifications {
		if notification.BookingUID == bookingUID {
			matched = append(matched, notification)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ScheduledFor.Before(matched[j].ScheduledFor)
	})

	return matched, nil
}
