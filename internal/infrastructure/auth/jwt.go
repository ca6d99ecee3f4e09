// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package auth implements JWT validation for the API gateway.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// Default configuration values for JWT authentication.
const (
	DefaultJWKSURL  = "http://localhost:4457/.well-known/jwks"
	DefaultAudience = "disha-meeting-service"

	jwksCacheTTL = 5 * time.Minute
)

// JWTAuthConfig is the configuration for JWT authentication.
type JWTAuthConfig struct {
	// JWKSURL is the URL of the JWKS endpoint of the identity provider.
	JWKSURL string
	// Audience is the expected audience of received tokens.
	Audience string
	// MockLocalPrincipal bypasses token validation and uses this principal
	// instead. For local development only.
	MockLocalPrincipal string
}

// JWTAuth validates bearer tokens against the identity provider's JWKS.
type JWTAuth struct {
	config    JWTAuthConfig
	validator *validator.Validator
}

// AuthClaims are the custom claims carried by platform-issued tokens.
type AuthClaims struct {
	Principal string `json:"principal"`
	Email     string `json:"email,omitempty"`
}

// Validate checks that the claims identify a principal.
func (c *AuthClaims) Validate(_ context.Context) error {
	if c.Principal == "" {
		return errors.New("principal must be provided")
	}
	return nil
}

// NewJWTAuth creates a new JWT authenticator from the given configuration.
func NewJWTAuth(config JWTAuthConfig) (*JWTAuth, error) {
	if config.JWKSURL == "" {
		config.JWKSURL = DefaultJWKSURL
	}
	if config.Audience == "" {
		config.Audience = DefaultAudience
	}

	jwksURL, err := url.Parse(config.JWKSURL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS URL: %w", err)
	}

	issuerURL := &url.URL{Scheme: jwksURL.Scheme, Host: jwksURL.Host}
	provider := jwks.NewCachingProvider(issuerURL, jwksCacheTTL, jwks.WithCustomJWKSURI(jwksURL))

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{config.Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &AuthClaims{}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up JWT validator: %w", err)
	}

	return &JWTAuth{
		config:    config,
		validator: jwtValidator,
	}, nil
}

// ParsePrincipal validates the bearer token and returns the principal it
// identifies.
func (a *JWTAuth) ParsePrincipal(ctx context.Context, token string, logger *slog.Logger) (string, error) {
	if a.config.MockLocalPrincipal != "" {
		logger.WarnContext(ctx, "using mock local principal, skipping token validation",
			"principal", a.config.MockLocalPrincipal)
		return a.config.MockLocalPrincipal, nil
	}

	if a.validator == nil {
		return "", errors.New("JWT validator is not set up")
	}

	parsed, err := a.validator.ValidateToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := parsed.(*validator.ValidatedClaims)
	if !ok {
		return "", errors.New("unexpected claims type from validated token")
	}

	customClaims, ok := claims.CustomClaims.(*AuthClaims)
	if !ok || customClaims.Principal == "" {
		return "", errors.New("token does not carry a principal")
	}

	return customClaims.Principal, nil
}
