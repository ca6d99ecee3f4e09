// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package platforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosharaf6/Disha/internal/domain/models"
	"github.com/mosharaf6/Disha/internal/infrastructure/platform"
)

func TestSetupZoomRegistersProvider(t *testing.T) {
	registry := platform.NewRegistry()

	validator := SetupZoom(registry, ZoomConfig{
		AccountID:          "account",
		ClientID:           "client",
		ClientSecret:       "secret",
		WebhookSecretToken: "webhook-secret",
	})

	provider, ok := registry.GetProvider(models.PlatformZoom)
	require.True(t, ok)
	assert.NotNil(t, provider)
	assert.NotNil(t, validator)
}

func TestSetupZoomUnconfigured(t *testing.T) {
	registry := platform.NewRegistry()

	validator := SetupZoom(registry, ZoomConfig{})

	_, ok := registry.GetProvider(models.PlatformZoom)
	assert.False(t, ok)
	assert.Nil(t, validator)
}

func TestZoomConfigIsConfigured(t *testing.T) {
	assert.False(t, ZoomConfig{}.IsConfigured())
	assert.False(t, ZoomConfig{AccountID: "a", ClientID: "b"}.IsConfigured())
	assert.True(t, ZoomConfig{AccountID: "a", ClientID: "b", ClientSecret: "c"}.IsConfigured())
}
