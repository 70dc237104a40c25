// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the structured logger used for progress and
// provider warnings.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a text logger writing to w at the given level, tagged with
// the service name.
func New(w io.Writer, service, level string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(h).With("service", service)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps debug, warn and error to their slog levels; anything
// else is info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
