// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Meeting time constraints
const (
	// MinBookingLeadTimeMinutes is the minimum lead time before a session can be booked
	MinBookingLeadTimeMinutes = 30

	// MaxMeetingDurationMinutes is the maximum duration of a session in minutes
	MaxMeetingDurationMinutes = 60
)
