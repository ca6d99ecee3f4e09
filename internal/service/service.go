// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the business logic of the meeting lifecycle.
package service

// Service is the minimal readiness contract shared by all services.
type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the services.
type ServiceConfig struct {
	// SideEffectWorkers bounds the concurrency of the notification and
	// message fan-out after a meeting is created. Zero means the default.
	SideEffectWorkers int
}

const defaultSideEffectWorkers = 4

func (c ServiceConfig) sideEffectWorkers() int {
	if c.SideEffectWorkers > 0 {
		return c.SideEffectWorkers
	}
	return defaultSideEffectWorkers
}
