// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"

	"github.com/mosharaf6/Disha/internal/infrastructure/auth"
)

// setupJWTAuth builds the bearer-token authenticator from the environment.
// When JWT_AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL is set, token validation is
// bypassed entirely, so it must never be set in a deployed environment.
func setupJWTAuth() (*auth.JWTAuth, error) {
	config := auth.JWTAuthConfig{
		JWKSURL:            os.Getenv("JWKS_URL"),
		Audience:           os.Getenv("JWT_AUDIENCE"),
		MockLocalPrincipal: os.Getenv("JWT_AUTH_DISABLED_MOCK_LOCAL_PRINCIPAL"),
	}
	if config.MockLocalPrincipal != "" {
		slog.Warn("JWT validation is disabled, all requests act as the mock principal",
			"principal", config.MockLocalPrincipal)
	}
	return auth.NewJWTAuth(config)
}
