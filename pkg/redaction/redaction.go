// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package redaction masks personal data before it reaches logs.
package redaction

import "strings"

// RedactEmail masks the local part of an email address, keeping the first
// character and the domain so log lines stay correlatable.
func RedactEmail(email string) string {
	if email == "" {
		return ""
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}

	return email[:1] + "***" + email[at:]
}
