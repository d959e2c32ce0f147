// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aName Authors

// Package logx configures the global logger for aname binaries.
// Secret material (passwords, mnemonics, key URIs, decrypted payloads)
// must never be passed to any logging call.
package logx

import (
	"log/slog"
	"os"
)

var logger *slog.Logger

// Init initializes the global logger.
// Set ANAME_DEBUG=1 to enable debug logging.
func Init() {
	level := slog.LevelInfo

	if os.Getenv("ANAME_DEBUG") != "" {
		level = slog.LevelDebug
	}

	// Diagnostics go to stderr; stdout is reserved for command output.
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Strip timestamps for cleaner CLI output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})

	logger = slog.New(handler)
}

// Debug logs a debug message (only shown when ANAME_DEBUG is set)
func Debug(msg string, args ...any) {
	if logger == nil {
		Init()
	}
	logger.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if logger == nil {
		Init()
	}
	logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	if logger == nil {
		Init()
	}
	logger.Error(msg, args...)
}
