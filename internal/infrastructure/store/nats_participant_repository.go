// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/logging"
)

// NatsParticipantRepository is the NATS KV store repository for meeting
// participants. Keys are encoded compound keys of meeting UID and
// participant UID so that one meeting's participants share a key prefix.
type NatsParticipantRepository struct {
	*NatsBaseRepository[models.Participant]
	keyBuilder *KeyBuilder
}

// NewNatsParticipantRepository creates a new NATS KV store repository for participants.
func NewNatsParticipantRepository(kvStore INatsKeyValue) *NatsParticipantRepository {
	return &NatsParticipantRepository{
		NatsBaseRepository: NewNatsBaseRepository[models.Participant](kvStore, "participant"),
		keyBuilder:         NewKeyBuilder(""),
	}
}

var _ domain.ParticipantRepository = (*NatsParticipantRepository)(nil)

func (r *NatsParticipantRepository) participantKey(meetingUID, participantUID string) (string, error) {
	key, err := r.keyBuilder.CompoundKeyEncoded(meetingUID, participantUID)
	if err != nil {
		return "", domain.NewInternalError("failed to build participant key", err)
	}
	return key, nil
}

func (r *NatsParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	if participant.UID == "" {
		participant.UID = uuid.New().String()
	}
	if participant.AttendanceStatus == "" {
		participant.AttendanceStatus = models.AttendancePending
	}

	key, err := r.participantKey(participant.MeetingUID, participant.UID)
	if err != nil {
		return err
	}

	return r.NatsBaseRepository.Create(ctx, key, participant)
}

// Get retrieves a participant by UID by scanning the bucket. The UID alone
// does not carry the meeting segment of the key.
func (r *NatsParticipantRepository) Get(ctx context.Context, participantUID string) (*models.Participant, error) {
	participant, _, err := r.GetWithRevision(ctx, participantUID)
	return participant, err
}

func (r *NatsParticipantRepository) GetWithRevision(ctx context.Context, participantUID string) (*models.Participant, uint64, error) {
	keys, err := r.ListKeys(ctx)
	if err != nil {
		return nil, 0, err
	}

	for _, key := range keys {
		decoded, err := r.keyBuilder.DecodeKey(key)
		if err != nil {
			slog.WarnContext(ctx, "failed to decode participant key, skipping",
				"key", key, logging.ErrKey, err)
			continue
		}
		if !strings.HasSuffix(decoded, "/"+participantUID) {
			continue
		}
		return r.NatsBaseRepository.GetWithRevision(ctx, key)
	}

	return nil, 0, domain.NewNotFoundError(fmt.Sprintf("participant with UID '%s' not found", participantUID))
}

// GetByMeetingAndEmail matches a participant by email within a meeting. The
// reconciler uses this for join events, where the provider participant ID is
// not yet known locally.
func (r *NatsParticipantRepository) GetByMeetingAndEmail(ctx context.Context, meetingUID, email string) (*models.Participant, uint64, error) {
	return r.findByMeeting(ctx, meetingUID, func(p *models.Participant) bool {
		return strings.EqualFold(p.Email, email)
	}, fmt.Sprintf("no participant with email '%s' in meeting '%s'", email, meetingUID))
}

// GetByMeetingAndProviderID matches a participant by the provider-assigned
// participant ID recorded at join time. The reconciler uses this for leave
// events.
func (r *NatsParticipantRepository) GetByMeetingAndProviderID(ctx context.Context, meetingUID, providerParticipantID string) (*models.Participant, uint64, error) {
	return r.findByMeeting(ctx, meetingUID, func(p *models.Participant) bool {
		return p.ProviderParticipantID != "" && p.ProviderParticipantID == providerParticipantID
	}, fmt.Sprintf("no participant with provider ID '%s' in meeting '%s'", providerParticipantID, meetingUID))
}

func (r *NatsParticipantRepository) findByMeeting(ctx context.Context, meetingUID string, match func(*models.Participant) bool, notFoundMsg string) (*models.Participant, uint64, error) {
	keys, err := r.meetingKeys(ctx, meetingUID)
	if err != nil {
		return nil, 0, err
	}

	for _, key := range keys {
		participant, revision, err := r.NatsBaseRepository.GetWithRevision(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "failed to get participant, skipping",
				"key", key, logging.ErrKey, err)
			continue
		}
		if match(participant) {
			return participant, revision, nil
		}
	}

	return nil, 0, domain.NewNotFoundError(notFoundMsg)
}

func (r *NatsParticipantRepository) Update(ctx context.Context, participant *models.Participant, revision uint64) error {
	key, err := r.participantKey(participant.MeetingUID, participant.UID)
	if err != nil {
		return err
	}

	return r.NatsBaseRepository.Update(ctx, key, participant, revision)
}

func (r *NatsParticipantRepository) ListByMeeting(ctx context.Context, meetingUID string) ([]*models.Participant, error) {
	keys, err := r.meetingKeys(ctx, meetingUID)
	if err != nil {
		return nil, err
	}

	var participants []*models.Participant
	for _, key := range keys {
		participant, err := r.NatsBaseRepository.Get(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "failed to get participant, skipping",
				"key", key, logging.ErrKey, err)
			continue
		}
		participants = append(participants, participant)
	}

	return participants, nil
}

// meetingKeys returns the encoded keys of all participants in a meeting.
func (r *NatsParticipantRepository) meetingKeys(ctx context.Context, meetingUID string) ([]string, error) {
	keys, err := r.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	prefix := meetingUID + "/"
	var matched []string
	for _, key := range keys {
		decoded, err := r.keyBuilder.DecodeKey(key)
		if err != nil {
			slog.WarnContext(ctx, "failed to decode participant key, skipping",
				"key", key, logging.ErrKey, err)
			continue
		}
		if strings.HasPrefix(decoded, prefix) {
			matched = append(matched, key)
		}
	}

	return matched, nil
}
