// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"net/http"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/middleware"
	"github.com/mosharaf6/Disha/internal/service"
	"github.com/mosharaf6/Disha/pkg/constants"
)

// zoomWebhookBody is the envelope Zoom posts to the webhook endpoint.
type zoomWebhookBody struct {
	Event   string         `json:"event"`
	EventTS int64          `json:"event_ts"`
	Payload map[string]any `json:"payload"`
}

// ZoomWebhook handles POST /api/webhooks/zoom. The signature is verified over
// the raw bytes captured by the body middleware, not the decoded body.
func (s *MeetingsAPI) ZoomWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawBody, ok := middleware.GetRawBodyFromContext(ctx)
	if !ok {
		writeError(ctx, w, domain.NewInternalError("webhook body was not captured"))
		return
	}

	var body zoomWebhookBody
	if err := json.Unmarshal(rawBody, &body); err != nil {
		writeError(ctx, w, domain.NewValidationError("invalid webhook body", err))
		return
	}

	resp, err := s.webhookService.ProcessWebhookEvent(ctx, service.WebhookRequest{
		Event:     body.Event,
		EventTS:   body.EventTS,
		Payload:   body.Payload,
		Signature: r.Header.Get(constants.ZoomSignatureHeader),
		Timestamp: r.Header.Get(constants.ZoomTimestampHeader),
		RawBody:   rawBody,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
