// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
)

func signBody(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	const secret = "test-secret"
	body := []byte(`{"event":"meeting.started","payload":{"object":{"id":"123"}}}`)
	timestamp := "1756300000"

	t.Run("valid signature", func(t *testing.T) {
		v := NewZoomWebhookValidator(secret)
		err := v.ValidateSignature(body, signBody(secret, timestamp, body), timestamp)
		assert.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		v := NewZoomWebhookValidator(secret)
		err := v.ValidateSignature(body, signBody("other-secret", timestamp, body), timestamp)
		assert.Equal(t, domain.ErrorTypeInvalidSignature, domain.GetErrorType(err))
	})

	t.Run("tampered body", func(t *testing.T) {
		v := NewZoomWebhookValidator(secret)
		sig := signBody(secret, timestamp, body)
		err := v.ValidateSignature([]byte(`{"event":"meeting.ended"}`), sig, timestamp)
		assert.Equal(t, domain.ErrorTypeInvalidSignature, domain.GetErrorType(err))
	})

	t.Run("missing signature", func(t *testing.T) {
		v := NewZoomWebhookValidator(secret)
		err := v.ValidateSignature(body, "", timestamp)
		assert.Equal(t, domain.ErrorTypeInvalidSignature, domain.GetErrorType(err))
	})

	t.Run("missing timestamp", func(t *testing.T) {
		v := NewZoomWebhookValidator(secret)
		err := v.ValidateSignature(body, signBody(secret, timestamp, body), "")
		assert.Equal(t, domain.ErrorTypeInvalidSignature, domain.GetErrorType(err))
	})

	t.Run("unconfigured secret", func(t *testing.T) {
		v := NewZoomWebhookValidator("")
		err := v.ValidateSignature(body, signBody(secret, timestamp, body), timestamp)
		assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
	})
}

func TestValidateTimestamp(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	newValidator := func() *ZoomWebhookValidator {
		v := NewZoomWebhookValidator("secret")
		v.now = func() time.Time { return now }
		return v
	}

	t.Run("recent timestamp", func(t *testing.T) {
		v := newValidator()
		ts := strconv.FormatInt(now.Add(-time.Minute).Unix(), 10)
		assert.NoError(t, v.ValidateTimestamp(ts))
	})

	t.Run("too old", func(t *testing.T) {
		v := newValidator()
		ts := strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)
		err := v.ValidateTimestamp(ts)
		assert.Equal(t, domain.ErrorTypeInvalidSignature, domain.GetErrorType(err))
	})

	t.Run("too far in the future", func(t *testing.T) {
		v := newValidator()
		ts := strconv.FormatInt(now.Add(10*time.Minute).Unix(), 10)
		err := v.ValidateTimestamp(ts)
		assert.Equal(t, domain.ErrorTypeInvalidSignature, domain.GetErrorType(err))
	})

	t.Run("not a number", func(t *testing.T) {
		v := newValidator()
		err := v.ValidateTimestamp("yesterday")
		assert.Equal(t, domain.ErrorTypeInvalidSignature, domain.GetErrorType(err))
	})
}

func TestIsValidEvent(t *testing.T) {
	v := NewZoomWebhookValidator("secret")

	assert.True(t, v.IsValidEvent(models.ZoomEventMeetingStarted))
	assert.True(t, v.IsValidEvent(models.ZoomEventMeetingEnded))
	assert.True(t, v.IsValidEvent(models.ZoomEventMeetingParticipantJoined))
	assert.True(t, v.IsValidEvent(models.ZoomEventMeetingParticipantLeft))
	assert.True(t, v.IsValidEvent(models.ZoomEventRecordingCompleted))
	assert.True(t, v.IsValidEvent("endpoint.url_validation"))
	assert.False(t, v.IsValidEvent("meeting.summary_completed"))
	assert.False(t, v.IsValidEvent(""))
}

func TestHandleURLValidation(t *testing.T) {
	t.Run("computes challenge token", func(t *testing.T) {
		v := NewZoomWebhookValidator("secret")
		encrypted, err := v.HandleURLValidation("plain-token")
		require.NoError(t, err)

		mac := hmac.New(sha256.New, []byte("secret"))
		mac.Write([]byte("plain-token"))

		assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), encrypted)
	})

	t.Run("fails without a secret token", func(t *testing.T) {
		v := NewZoomWebhookValidator("")
		_, err := v.HandleURLValidation("plain-token")
		require.Error(t, err)
		assert.Equal(t, domain.ErrorTypeInternal, domain.GetErrorType(err))
	})
}
