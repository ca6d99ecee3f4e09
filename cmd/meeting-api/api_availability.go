// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

// createSlotRequest is the body of POST /api/availability.
type createSlotRequest struct {
	MentorUID string    `json:"mentor_uid" validate:"required"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
	Duration  string    `json:"duration,omitempty" validate:"omitempty,oneof=15 30 60"`
}

// slotResponse is the wire representation of an availability slot.
type slotResponse struct {
	UID       string    `json:"uid"`
	MentorUID string    `json:"mentor_uid"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration,omitempty"`
	Booked    bool      `json:"booked"`
}

func toSlotResponse(slot *models.AvailabilitySlot) slotResponse {
	return slotResponse{
		UID:       slot.UID,
		MentorUID: slot.MentorUID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Duration:  slot.Duration,
		Booked:    slot.Booked,
	}
}

// CreateAvailabilitySlot handles POST /api/availability.
func (s *MeetingsAPI) CreateAvailabilitySlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slot, err := s.availabilityService.PublishSlot(ctx, &models.AvailabilitySlot{
		MentorUID: req.MentorUID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Duration:  req.Duration,
	}, principalFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, toSlotResponse(slot))
}

// ListMentorAvailability handles GET /api/mentors/{id}/availability.
func (s *MeetingsAPI) ListMentorAvailability(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mentorUID := chi.URLParam(r, "id")
	if mentorUID == "" {
		writeError(ctx, w, domain.NewValidationError("mentor id is required"))
		return
	}

	slots, err := s.availabilityService.ListOpenSlots(ctx, mentorUID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	responses := make([]slotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = toSlotResponse(slot)
	}

	writeJSON(ctx, w, http.StatusOK, responses)
}

// DeleteAvailabilitySlot handles DELETE /api/availability/{uid}.
func (s *MeetingsAPI) DeleteAvailabilitySlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slotUID, err := uidPathParam(r, "uid")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := s.availabilityService.RemoveSlot(ctx, slotUID, principalFromContext(ctx)); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusNoContent, nil)
}
