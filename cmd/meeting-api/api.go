// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/infrastructure/auth"
	"github.com/mosharaf6/Disha/internal/logging"
	"github.com/mosharaf6/Disha/internal/service"
	"github.com/mosharaf6/Disha/pkg/constants"
)

var validate = validator.New()

// MeetingsAPI binds the HTTP surface to the services.
type MeetingsAPI struct {
	auth                *auth.JWTAuth
	meetingService      *service.MeetingService
	bookingService      *service.BookingService
	availabilityService *service.AvailabilityService
	webhookService      *service.ZoomWebhookService
}

// NewMeetingsAPI creates a new MeetingsAPI.
func NewMeetingsAPI(
	jwtAuth *auth.JWTAuth,
	meetingService *service.MeetingService,
	bookingService *service.BookingService,
	availabilityService *service.AvailabilityService,
	webhookService *service.ZoomWebhookService,
) *MeetingsAPI {
	return &MeetingsAPI{
		auth:                jwtAuth,
		meetingService:      meetingService,
		bookingService:      bookingService,
		availabilityService: availabilityService,
		webhookService:      webhookService,
	}
}

// ServiceReady reports whether every service behind the API can take requests.
func (s *MeetingsAPI) ServiceReady() bool {
	return s.meetingService.ServiceReady() &&
		s.bookingService.ServiceReady() &&
		s.availabilityService.ServiceReady() &&
		s.webhookService.ServiceReady()
}

// errorResponse is the JSON error body returned by every endpoint.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForErrorType maps the domain error taxonomy onto HTTP status codes.
func statusForErrorType(errType domain.ErrorType) int {
	switch errType {
	case domain.ErrorTypeValidation, domain.ErrorTypePrecondition,
		domain.ErrorTypeInvalidTransition, domain.ErrorTypeInvalidSignature:
		return http.StatusBadRequest
	case domain.ErrorTypeUnauthenticated:
		return http.StatusUnauthorized
	case domain.ErrorTypeForbidden:
		return http.StatusForbidden
	case domain.ErrorTypeNotFound:
		return http.StatusNotFound
	case domain.ErrorTypeConflict:
		return http.StatusConflict
	case domain.ErrorTypeUpstream:
		return http.StatusBadGateway
	case domain.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a domain error. Upstream provider errors are collapsed
// to a generic message so third-party response text never reaches clients.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	errType := domain.GetErrorType(err)
	status := statusForErrorType(errType)

	message := err.Error()
	switch errType {
	case domain.ErrorTypeUpstream:
		message = "meeting provider request failed"
	case domain.ErrorTypeInternal:
		message = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", logging.ErrKey, err)
	}

	writeJSON(ctx, w, status, errorResponse{
		Code:    http.StatusText(status),
		Message: message,
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "error encoding response body", logging.ErrKey, err)
	}
}

// decodeJSON decodes the request body into dst and runs struct validation.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body", err)
	}
	if err := validate.Struct(dst); err != nil {
		return domain.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}

// principalFromContext returns the authenticated principal placed in the
// context by the authorization middleware.
func principalFromContext(ctx context.Context) string {
	principal, _ := ctx.Value(constants.PrincipalContextID).(string)
	return principal
}

// authorizationMiddleware parses the bearer token and stores the principal in
// the request context. The Zoom webhook route is excluded because Zoom
// authenticates with an HMAC signature instead of a bearer token.
func (s *MeetingsAPI) authorizationMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := r.Header.Get(constants.AuthorizationHeader)
			token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
			if token == "" {
				writeError(ctx, w, domain.NewUnauthenticatedError("missing bearer token"))
				return
			}

			principal, err := s.auth.ParsePrincipal(ctx, token, slog.Default())
			if err != nil {
				writeError(ctx, w, domain.NewUnauthenticatedError("invalid bearer token", err))
				return
			}

			ctx = context.WithValue(ctx, constants.PrincipalContextID, principal)
			ctx = logging.AppendCtx(ctx, slog.String("principal", principal))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Livez reports process liveness. It always succeeds while the process runs;
// non-recoverable errors must terminate the process instead.
func (s *MeetingsAPI) Livez(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}

// Readyz reports whether the service can take inbound requests.
func (s *MeetingsAPI) Readyz(w http.ResponseWriter, r *http.Request) {
	if !s.ServiceReady() {
		writeError(r.Context(), w, domain.NewUnavailableError("service not ready"))
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK\n"))
}
