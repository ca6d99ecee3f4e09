// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/logging"
	"github.com/mosharaf6/Disha/pkg/utils"
)

// ZoomWebhookService verifies incoming Zoom webhook deliveries and publishes
// them to NATS for asynchronous reconciliation.
type ZoomWebhookService struct {
	messageSender    domain.WebhookEventSender
	webhookValidator domain.WebhookValidator
}

// WebhookRequest is a received webhook delivery. RawBody carries the exact
// bytes Zoom sent; the signature is computed over those bytes.
type WebhookRequest struct {
	Event     string
	EventTS   int64
	Payload   map[string]any
	Signature string
	Timestamp string
	RawBody   []byte
}

// WebhookResponse is the body returned to Zoom.
type WebhookResponse struct {
	Status         *string `json:"status,omitempty"`
	Message        *string `json:"message,omitempty"`
	PlainToken     *string `json:"plainToken,omitempty"`
	EncryptedToken *string `json:"encryptedToken,omitempty"`
}

// NewZoomWebhookService creates a new ZoomWebhookService.
func NewZoomWebhookService(
	messageSender domain.WebhookEventSender,
	webhookValidator domain.WebhookValidator,
) *ZoomWebhookService {
	return &ZoomWebhookService{
		messageSender:    messageSender,
		webhookValidator: webhookValidator,
	}
}

// ServiceReady checks if the service is ready to process requests.
func (s *ZoomWebhookService) ServiceReady() bool {
	return s.messageSender != nil && s.webhookValidator != nil
}

// ProcessWebhookEvent verifies and dispatches a Zoom webhook delivery. The
// signature must validate before any state is touched or any message is
// published.
func (s *ZoomWebhookService) ProcessWebhookEvent(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	if !s.ServiceReady() {
		slog.ErrorContext(ctx, "service not initialized", logging.PriorityCritical())
		return nil, domain.NewUnavailableError("webhook service not initialized")
	}

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.webhookValidator.ValidateTimestamp(req.Timestamp); err != nil {
		return nil, err
	}
	if err := s.webhookValidator.ValidateSignature(req.RawBody, req.Signature, req.Timestamp); err != nil {
		return nil, err
	}

	if req.Event == models.ZoomEventEndpointURLValidation {
		return s.handleEndpointValidation(ctx, req)
	}

	return s.publishEvent(ctx, req)
}

// validateRequest validates the webhook request structure.
func (s *ZoomWebhookService) validateRequest(req WebhookRequest) error {
	if req.Event == "" {
		return domain.NewValidationError("missing event field")
	}
	if req.Payload == nil {
		return domain.NewValidationError("missing payload field")
	}
	if req.Signature == "" || req.Timestamp == "" {
		return domain.NewValidationError("missing signature headers")
	}
	return nil
}

// handleEndpointValidation answers Zoom's endpoint URL validation challenge.
func (s *ZoomWebhookService) handleEndpointValidation(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	plainToken, ok := req.Payload["plainToken"].(string)
	if !ok || plainToken == "" {
		slog.ErrorContext(ctx, "missing plainToken in validation payload")
		return nil, domain.NewValidationError("missing plainToken in validation payload")
	}

	encryptedToken, err := s.webhookValidator.HandleURLValidation(plainToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compute URL validation challenge", logging.ErrKey, err)
		return nil, err
	}

	slog.InfoContext(ctx, "answered Zoom endpoint URL validation")

	return &WebhookResponse{
		PlainToken:     utils.StringPtr(plainToken),
		EncryptedToken: utils.StringPtr(encryptedToken),
	}, nil
}

// publishEvent forwards a verified event onto its NATS subject. Event types
// this service does not reconcile are acknowledged and logged so Zoom does
// not retry them.
func (s *ZoomWebhookService) publishEvent(ctx context.Context, req WebhookRequest) (*WebhookResponse, error) {
	subject := zoomWebhookSubject(req.Event)
	if subject == "" {
		slog.WarnContext(ctx, "ignoring unsupported Zoom webhook event", "event_type", req.Event)
		return &WebhookResponse{
			Status:  utils.StringPtr("ignored"),
			Message: utils.StringPtr(fmt.Sprintf("event %s is not processed", req.Event)),
		}, nil
	}

	message := models.ZoomWebhookEventMessage{
		EventType: req.Event,
		EventTS:   req.EventTS,
		Payload:   req.Payload,
	}

	if err := s.messageSender.PublishZoomWebhookEvent(ctx, subject, message); err != nil {
		slog.ErrorContext(ctx, "failed to publish webhook event",
			"event_type", req.Event,
			"subject", subject,
			logging.ErrKey, err)
		return nil, domain.NewInternalError("failed to queue webhook event", err)
	}

	slog.InfoContext(ctx, "queued Zoom webhook event", "event_type", req.Event, "subject", subject)

	return &WebhookResponse{
		Status:  utils.StringPtr("success"),
		Message: utils.StringPtr(fmt.Sprintf("event %s queued for processing", req.Event)),
	}, nil
}

// zoomWebhookSubject maps Zoom event types to NATS subjects.
func zoomWebhookSubject(eventType string) string {
	switch eventType {
	case models.ZoomEventMeetingStarted:
		return models.ZoomWebhookMeetingStartedSubject
	case models.ZoomEventMeetingEnded:
		return models.ZoomWebhookMeetingEndedSubject
	case models.ZoomEventMeetingParticipantJoined:
		return models.ZoomWebhookMeetingParticipantJoinedSubject
	case models.ZoomEventMeetingParticipantLeft:
		return models.ZoomWebhookMeetingParticipantLeftSubject
	case models.ZoomEventRecordingCompleted:
		return models.ZoomWebhookRecordingCompletedSubject
	}
	return ""
}
