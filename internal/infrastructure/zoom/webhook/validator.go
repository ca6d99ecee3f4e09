// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package webhook implements Zoom webhook request verification.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

// TimestampTolerance is the maximum allowed age of a webhook event before it
// is rejected as a possible replay.
const TimestampTolerance = 5 * time.Minute

// ZoomWebhookValidator verifies Zoom webhook signatures and timestamps.
type ZoomWebhookValidator struct {
	secretToken string
	now         func() time.Time
}

var _ domain.WebhookValidator = (*ZoomWebhookValidator)(nil)

// NewZoomWebhookValidator creates a new Zoom webhook validator
func NewZoomWebhookValidator(secretToken string) *ZoomWebhookValidator {
	return &ZoomWebhookValidator{
		secretToken: secretToken,
		now:         time.Now,
	}
}

// ValidateSignature checks the signature header against the raw request body.
// The signature is computed over the exact bytes received, never over a
// re-serialized payload, so key ordering and whitespace differences cannot
// break verification.
func (v *ZoomWebhookValidator) ValidateSignature(body []byte, signature, timestamp string) error {
	if v.secretToken == "" {
		return domain.NewInternalError("webhook secret token not configured")
	}
	if signature == "" {
		return domain.NewInvalidSignatureError("missing webhook signature")
	}
	if timestamp == "" {
		return domain.NewInvalidSignatureError("missing webhook timestamp")
	}

	// The signed message is v0:{timestamp}:{raw body}.
	mac := hmac.New(sha256.New, []byte(v.secretToken))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return domain.NewInvalidSignatureError("webhook signature does not match expected signature")
	}

	return nil
}

// ValidateTimestamp checks that the event timestamp is within the replay
// tolerance window.
func (v *ZoomWebhookValidator) ValidateTimestamp(timestamp string) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return domain.NewInvalidSignatureError("invalid webhook timestamp", err)
	}

	eventTime := time.Unix(ts, 0)
	age := v.now().Sub(eventTime)
	if age > TimestampTolerance || age < -TimestampTolerance {
		return domain.NewInvalidSignatureError("webhook timestamp outside tolerance window")
	}

	return nil
}

// IsValidEvent checks if the event type is supported
func (v *ZoomWebhookValidator) IsValidEvent(eventType string) bool {
	switch eventType {
	case models.ZoomEventMeetingStarted,
		models.ZoomEventMeetingEnded,
		models.ZoomEventMeetingParticipantJoined,
		models.ZoomEventMeetingParticipantLeft,
		models.ZoomEventRecordingCompleted,
		models.ZoomEventEndpointURLValidation:
		return true
	}
	return false
}

// HandleURLValidation computes the encrypted token for an
// endpoint.url_validation challenge.
func (v *ZoomWebhookValidator) HandleURLValidation(plainToken string) (string, error) {
	if v.secretToken == "" {
		return "", domain.NewInternalError("webhook secret token not configured")
	}

	mac := hmac.New(sha256.New, []byte(v.secretToken))
	mac.Write([]byte(plainToken))
	return hex.EncodeToString(mac.Sum(nil)), nil
}
