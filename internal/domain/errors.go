// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package domain

import "errors"

// Sentinel errors shared by the store and service layers.
var (
	// ErrRevisionMismatch signals that a revision-checked update lost the race.
	ErrRevisionMismatch = errors.New("revision mismatch")
	// ErrServiceUnavailable signals that a dependency has not been wired up.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ErrorType represents the semantic category of an error
type ErrorType int

const (
	ErrorTypeValidation        ErrorType = iota // Input validation errors (400 Bad Request)
	ErrorTypeUnauthenticated                    // Missing or invalid credentials (401 Unauthorized)
	ErrorTypeForbidden                          // Authenticated but not a party to the resource (403 Forbidden)
	ErrorTypeNotFound                           // Resource not found errors (404 Not Found)
	ErrorTypeConflict                           // Resource conflict errors (409 Conflict)
	ErrorTypePrecondition                       // Resource is in the wrong state for the operation (400 Bad Request)
	ErrorTypeInvalidTransition                  // Meeting status transition rejected by the state machine (400 Bad Request)
	ErrorTypeInvalidSignature                   // Webhook signature mismatch (400 Bad Request)
	ErrorTypeUpstream                           // Meeting provider or network failure (502 Bad Gateway)
	ErrorTypeInternal                           // Internal server errors (500 Internal Server Error)
	ErrorTypeUnavailable                        // Service unavailable errors (503 Service Unavailable)
)

// DomainError represents an error with semantic type information
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error for wrapping
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal // default fallback
}

// Error constructors for different types
func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewUnauthenticatedError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUnauthenticated, Message: message, Err: errors.Join(err...)}
}

func NewForbiddenError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeForbidden, Message: message, Err: errors.Join(err...)}
}

func NewNotFoundError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message, Err: errors.Join(err...)}
}

func NewConflictError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeConflict, Message: message, Err: errors.Join(err...)}
}

func NewPreconditionError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypePrecondition, Message: message, Err: errors.Join(err...)}
}

func NewInvalidTransitionError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInvalidTransition, Message: message, Err: errors.Join(err...)}
}

func NewInvalidSignatureError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInvalidSignature, Message: message, Err: errors.Join(err...)}
}

func NewUpstreamError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUpstream, Message: message, Err: errors.Join(err...)}
}

func NewInternalError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInternal, Message: message, Err: errors.Join(err...)}
}

func NewUnavailableError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUnavailable, Message: message, Err: errors.Join(err...)}
}
