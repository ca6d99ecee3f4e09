// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package platforms wires meeting platform providers from the environment.
package platforms

import (
	"log/slog"
	"os"

	"github.com/mosharaf6/Disha/internal/domain"
	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/infrastructure/platform"
	"github.com/mosharaf6/Disha/internal/infrastructure/zoom"
	"github.com/mosharaf6/Disha/internal/infrastructure/zoom/api"
	"github.com/mosharaf6/Disha/internal/infrastructure/zoom/webhook"
)

// ZoomConfig holds Zoom-specific configuration.
type ZoomConfig struct {
	AccountID          string
	ClientID           string
	ClientSecret       string
	WebhookSecretToken string
}

// NewZoomConfigFromEnv creates a ZoomConfig from environment variables.
func NewZoomConfigFromEnv() ZoomConfig {
	return ZoomConfig{
		AccountID:          os.Getenv("ZOOM_ACCOUNT_ID"),
		ClientID:           os.Getenv("ZOOM_CLIENT_ID"),
		ClientSecret:       os.Getenv("ZOOM_CLIENT_SECRET"),
		WebhookSecretToken: os.Getenv("ZOOM_WEBHOOK_SECRET_TOKEN"),
	}
}

// IsConfigured returns true if all required Zoom credentials are provided.
func (z ZoomConfig) IsConfigured() bool {
	return z.AccountID != "" && z.ClientID != "" && z.ClientSecret != ""
}

// ToAPIConfig converts the ZoomConfig to an api.Config.
func (z ZoomConfig) ToAPIConfig() api.Config {
	return api.Config{
		AccountID:    z.AccountID,
		ClientID:     z.ClientID,
		ClientSecret: z.ClientSecret,
	}
}

// SetupZoom registers the Zoom provider and returns the webhook validator if
// a webhook secret is configured.
func SetupZoom(registry *platform.Registry, config ZoomConfig) domain.WebhookValidator {
	if config.IsConfigured() {
		zoomClient := api.NewClient(config.ToAPIConfig())
		zoomProvider := zoom.NewProvider(zoomClient, zoom.ProviderConfig{
			WaitingRoomEnabled: true,
			MuteOnEntry:        true,
		})
		registry.RegisterProvider(models.PlatformZoom, zoomProvider)

		slog.Info("Zoom platform integration configured",
			"account_id", config.AccountID,
			"client_id", config.ClientID)
	} else {
		slog.Warn("Zoom platform integration not configured - missing required environment variables",
			"has_account_id", config.AccountID != "",
			"has_client_id", config.ClientID != "",
			"has_client_secret", config.ClientSecret != "")
	}

	if config.WebhookSecretToken != "" {
		validator := webhook.NewZoomWebhookValidator(config.WebhookSecretToken)
		slog.Info("Zoom webhook validation configured")
		return validator
	}

	slog.Warn("Zoom webhook validation not configured - missing ZOOM_WEBHOOK_SECRET_TOKEN")
	return nil
}
