// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/service"
)

// createMeetingRequest is the body of POST /api/meetings.
type createMeetingRequest struct {
	BookingUID         string `json:"booking_uid" validate:"required,uuid"`
	HostProviderUserID string `json:"host_provider_user_id,omitempty"`
}

// updateMeetingStatusRequest is the body of PUT /api/meetings/{uid}/status.
type updateMeetingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// cancelMeetingRequest is the optional body of DELETE /api/meetings/{uid}.
type cancelMeetingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// cancelMeetingResponse confirms the cancellation.
type cancelMeetingResponse struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

// meetingResponse is the wire representation of a meeting.
type meetingResponse struct {
	UID                string     `json:"uid"`
	BookingUID         string     `json:"booking_uid"`
	Platform           string     `json:"platform"`
	Topic              string     `json:"topic,omitempty"`
	JoinURL            string     `json:"join_url"`
	StartURL           string     `json:"start_url,omitempty"`
	Password           string     `json:"password,omitempty"`
	ScheduledStartTime time.Time  `json:"scheduled_start_time"`
	ScheduledDuration  int        `json:"scheduled_duration_minutes"`
	Timezone           string     `json:"timezone,omitempty"`
	Status             string     `json:"status"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`
	ActualDuration     int        `json:"actual_duration_minutes,omitempty"`
	RecordingURL       string     `json:"recording_url,omitempty"`
	RecordingPassword  string     `json:"recording_password,omitempty"`
}

// meetingDetailsResponse pairs a meeting with its redacted booking.
type meetingDetailsResponse struct {
	Meeting meetingResponse `json:"meeting"`
	Booking bookingResponse `json:"booking"`
}

func toMeetingResponse(meeting *models.Meeting) meetingResponse {
	return meetingResponse{
		UID:                meeting.UID,
		BookingUID:         meeting.BookingUID,
		Platform:           meeting.Platform,
		Topic:              meeting.Topic,
		JoinURL:            meeting.JoinURL,
		StartURL:           meeting.StartURL,
		Password:           meeting.Password,
		ScheduledStartTime: meeting.ScheduledStartTime,
		ScheduledDuration:  meeting.ScheduledDuration,
		Timezone:           meeting.Timezone,
		Status:             string(meeting.Status),
		ActualStartTime:    meeting.ActualStartTime,
		ActualEndTime:      meeting.ActualEndTime,
		ActualDuration:     meeting.ActualDuration,
		RecordingURL:       meeting.RecordingURL,
		RecordingPassword:  meeting.RecordingPassword,
	}
}

// uidPathParam validates a UUID path parameter.
func uidPathParam(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", domain.NewValidationError(name + " must be a valid UUID")
	}
	return raw, nil
}

// CreateMeeting handles POST /api/meetings.
func (s *MeetingsAPI) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createMeetingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	meeting, err := s.meetingService.CreateMeeting(ctx, service.CreateMeetingRequest{
		BookingUID:         req.BookingUID,
		HostProviderUserID: req.HostProviderUserID,
		Requester:          principalFromContext(ctx),
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, toMeetingResponse(meeting))
}

// GetMeeting handles GET /api/meetings/{uid}.
func (s *MeetingsAPI) GetMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	meetingUID, err := uidPathParam(r, "uid")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := s.meetingService.GetMeeting(ctx, meetingUID, principalFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, meetingDetailsResponse{
		Meeting: toMeetingResponse(details.Meeting),
		Booking: toBookingResponse(details.Booking),
	})
}

// GetMeetingForBooking handles GET /api/meetings/booking/{bookingId}.
func (s *MeetingsAPI) GetMeetingForBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookingUID, err := uidPathParam(r, "bookingId")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := s.meetingService.GetMeetingForBooking(ctx, bookingUID, principalFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, meetingDetailsResponse{
		Meeting: toMeetingResponse(details.Meeting),
		Booking: toBookingResponse(details.Booking),
	})
}

// UpdateMeetingStatus handles PUT /api/meetings/{uid}/status.
func (s *MeetingsAPI) UpdateMeetingStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	meetingUID, err := uidPathParam(r, "uid")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateMeetingStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	status, ok := models.ParseMeetingStatus(req.Status)
	if !ok {
		writeError(ctx, w, domain.NewValidationError("unknown meeting status: "+req.Status))
		return
	}

	meeting, err := s.meetingService.UpdateMeetingStatus(ctx, meetingUID, principalFromContext(ctx), status, service.TriggerUser)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toMeetingResponse(meeting))
}

// CancelMeeting handles DELETE /api/meetings/{uid}.
func (s *MeetingsAPI) CancelMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	meetingUID, err := uidPathParam(r, "uid")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// The cancellation reason body is optional.
	var req cancelMeetingRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	if err := s.meetingService.CancelMeeting(ctx, meetingUID, principalFromContext(ctx), req.Reason); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, cancelMeetingResponse{
		UID:    meetingUID,
		Status: string(models.MeetingStatusCancelled),
	})
}
