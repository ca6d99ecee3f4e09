// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package models

import "time"

// AvailabilitySlot is a bookable window of mentor time. A slot is marked
// booked when a learner books it and freed again if that booking is
// cancelled.
type AvailabilitySlot struct {
	UID       string     `json:"uid"`
	MentorUID string     `json:"mentor_uid"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Duration  string     `json:"duration,omitempty"`
	Booked    bool       `json:"booked"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Open reports whether the slot can still be booked at the given time.
func (s *AvailabilitySlot) Open(now time.Time) bool {
	return !s.Booked && s.StartTime.After(now)
}
