// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package platform holds the registry of video conference providers.
package platform

import (
	"strings"
	"sync"

	"github.com/mosharaf6/Disha/internal/domain"
)

// Registry implements the PlatformRegistry interface.
type Registry struct {
	providers map[string]domain.PlatformProvider
	mu        sync.RWMutex
}

// NewRegistry creates a new platform registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]domain.PlatformProvider),
	}
}

var _ domain.PlatformRegistry = (*Registry)(nil)

// GetProvider returns the provider registered for the platform name.
// Lookup is case-insensitive.
func (r *Registry) GetProvider(platform string) (domain.PlatformProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[strings.ToLower(platform)]
	return provider, ok
}

// RegisterProvider registers a platform provider under the given name.
func (r *Registry) RegisterProvider(platform string, provider domain.PlatformProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[strings.ToLower(platform)] = provider
}
