// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// ZoomWebhookPath is the route on which Zoom delivers webhook events.
const ZoomWebhookPath = "/api/webhooks/zoom"

// WebhookBodyContextKey is the context key for the raw webhook body.
type WebhookBodyContextKey struct{}

// WebhookBodyCaptureMiddleware captures the raw request body on the Zoom
// webhook route and stores it in the request context. Signature validation
// must run over the exact bytes Zoom sent, so the body is captured before
// any JSON decoding can alter it.
func WebhookBodyCaptureMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == ZoomWebhookPath {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					http.Error(w, "Failed to read request body", http.StatusBadRequest)
					return
				}
				_ = r.Body.Close()

				// Restore the body so the handler can decode it normally.
				r.Body = io.NopCloser(bytes.NewReader(body))

				ctx := context.WithValue(r.Context(), WebhookBodyContextKey{}, body)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetRawBodyFromContext extracts the raw webhook body from the context.
func GetRawBodyFromContext(ctx context.Context) ([]byte, bool) {
	body, ok := ctx.Value(WebhookBodyContextKey{}).([]byte)
	return body, ok
}
