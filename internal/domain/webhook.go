// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

// WebhookValidator validates the authenticity of an incoming webhook request.
type WebhookValidator interface {
	// ValidateSignature checks the signature header against the raw request
	// body and the event timestamp header.
	ValidateSignature(body []byte, signature, timestamp string) error
	// ValidateTimestamp checks that the event timestamp is within the replay
	// tolerance window.
	ValidateTimestamp(timestamp string) error
	// HandleURLValidation computes the encrypted token for the provider's
	// endpoint URL validation challenge.
	HandleURLValidation(plainToken string) (string, error)
}
