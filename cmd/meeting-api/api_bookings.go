// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"time"

	"github.com/mosharaf6/Disha/internal/domain/models"
)

// createBookingRequest is the body of POST /api/bookings. When a slot UID is
// given, the slot's window overrides the start and end times.
type createBookingRequest struct {
	LearnerUID   string    `json:"learner_uid" validate:"required"`
	LearnerName  string    `json:"learner_name" validate:"required"`
	LearnerEmail string    `json:"learner_email" validate:"required,email"`
	MentorUID    string    `json:"mentor_uid" validate:"required"`
	MentorName   string    `json:"mentor_name" validate:"required"`
	MentorEmail  string    `json:"mentor_email" validate:"required,email"`
	SlotUID      string    `json:"slot_uid,omitempty" validate:"omitempty,uuid"`
	StartTime    time.Time `json:"start_time,omitempty"`
	EndTime      time.Time `json:"end_time,omitempty"`
	Timezone     string    `json:"timezone,omitempty"`
	Duration     string    `json:"duration,omitempty" validate:"omitempty,oneof=15 30 60"`
	Topic        string    `json:"topic,omitempty"`
	Message      string    `json:"message,omitempty"`
	MentorNotes  string    `json:"mentor_notes,omitempty"`
}

// bookingResponse is the wire representation of a booking.
type bookingResponse struct {
	UID                string    `json:"uid"`
	LearnerUID         string    `json:"learner_uid"`
	LearnerName        string    `json:"learner_name"`
	MentorUID          string    `json:"mentor_uid"`
	MentorName         string    `json:"mentor_name"`
	SlotUID            string    `json:"slot_uid,omitempty"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	Timezone           string    `json:"timezone,omitempty"`
	Duration           string    `json:"duration,omitempty"`
	Topic              string    `json:"topic,omitempty"`
	Message            string    `json:"message,omitempty"`
	MentorNotes        string    `json:"mentor_notes,omitempty"`
	Status             string    `json:"status"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
}

func toBookingResponse(booking *models.Booking) bookingResponse {
	return bookingResponse{
		UID:                booking.UID,
		LearnerUID:         booking.LearnerUID,
		LearnerName:        booking.LearnerName,
		MentorUID:          booking.MentorUID,
		MentorName:         booking.MentorName,
		SlotUID:            booking.SlotUID,
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		Timezone:           booking.Timezone,
		Duration:           booking.Duration,
		Topic:              booking.Topic,
		Message:            booking.Message,
		MentorNotes:        booking.MentorNotes,
		Status:             string(booking.Status),
		CancellationReason: booking.CancellationReason,
	}
}

// CreateBooking handles POST /api/bookings.
func (s *MeetingsAPI) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	booking, err := s.bookingService.CreateBooking(ctx, &models.Booking{
		LearnerUID:   req.LearnerUID,
		LearnerName:  req.LearnerName,
		LearnerEmail: req.LearnerEmail,
		MentorUID:    req.MentorUID,
		MentorName:   req.MentorName,
		MentorEmail:  req.MentorEmail,
		SlotUID:      req.SlotUID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Timezone:     req.Timezone,
		Duration:     req.Duration,
		Topic:        req.Topic,
		Message:      req.Message,
		MentorNotes:  req.MentorNotes,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, toBookingResponse(booking))
}

// GetBooking handles GET /api/bookings/{uid}.
func (s *MeetingsAPI) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookingUID, err := uidPathParam(r, "uid")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	booking, err := s.bookingService.GetBooking(ctx, bookingUID, principalFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toBookingResponse(booking))
}

// ListBookings handles GET /api/bookings.
func (s *MeetingsAPI) ListBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookings, err := s.bookingService.ListBookings(ctx, principalFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	responses := make([]bookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = toBookingResponse(booking)
	}

	writeJSON(ctx, w, http.StatusOK, responses)
}
