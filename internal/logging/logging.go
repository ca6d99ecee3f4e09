// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package logging configures structured logging for the meeting service.
package logging

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	slogotel "github.com/remychantenay/slog-otel"
)

// ErrKey is the conventional attribute key for error values.
const ErrKey = "error"

type ctxKey string

// slogFields holds the attributes accumulated on a context via AppendCtx.
const slogFields ctxKey = "slog_fields"

// priorityCritical marks records that should page whoever is on call.
const priorityCritical = "critical"

// contextHandler copies the attributes stored on the context onto every
// record before delegating to the wrapped handler.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

// AppendCtx returns a context carrying attr in addition to any attributes
// already present. The existing slice is never mutated so sibling contexts
// do not observe each other's attributes.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	existing, _ := parent.Value(slogFields).([]slog.Attr)
	attrs := make([]slog.Attr, 0, len(existing)+1)
	attrs = append(attrs, existing...)
	attrs = append(attrs, attr)
	return context.WithValue(parent, slogFields, attrs)
}

// InitStructureLogConfig installs the process-wide slog default: a JSON
// handler at the level named by LOG_LEVEL (debug when unset or unknown),
// source locations when LOG_ADD_SOURCE is truthy, trace correlation, and
// context attribute propagation.
func InitStructureLogConfig() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err == nil {
		opts.Level = level
	}

	switch strings.ToLower(os.Getenv("LOG_ADD_SOURCE")) {
	case "true", "t", "1":
		opts.AddSource = true
	}

	var h slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	h = slogotel.OtelHandler{Next: h}
	log.SetFlags(log.Llongfile)
	slog.SetDefault(slog.New(contextHandler{h}))

	slog.Info("log config",
		"logLevel", opts.Level,
		"addSource", opts.AddSource,
	)

	return h
}

// Priority tags a record with an escalation level.
func Priority(level string) slog.Attr {
	return slog.String("priority", level)
}

// PriorityCritical tags a record as requiring operator attention.
func PriorityCritical() slog.Attr {
	return Priority(priorityCritical)
}
