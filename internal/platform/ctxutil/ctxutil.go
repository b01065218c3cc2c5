// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/kervanlab/kervan/internal/platform/ctxkey"
	"github.com/kervanlab/kervan/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithSession returns a new context with the user session payload attached.
func WithSession(ctx context.Context, payload *sec.SessionPayload) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, payload)
}

// GetSession retrieves the user [*sec.SessionPayload] from the [context.Context].
// Returns nil for anonymous requests.
func GetSession(ctx context.Context) *sec.SessionPayload {
	payload, ok := ctx.Value(ctxkey.KeySession).(*sec.SessionPayload)
	if !ok {
		return nil
	}
	return payload
}

// WithAdminSession returns a new context with the admin session payload attached.
//
// The admin payload is tracked under its own key: the two session slots
// transition independently, and a request may carry both.
func WithAdminSession(ctx context.Context, payload *sec.SessionPayload) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAdminSession, payload)
}

// GetAdminSession retrieves the admin [*sec.SessionPayload] from the [context.Context].
// Returns nil when the request has no valid admin session.
func GetAdminSession(ctx context.Context) *sec.SessionPayload {
	payload, ok := ctx.Value(ctxkey.KeyAdminSession).(*sec.SessionPayload)
	if !ok {
		return nil
	}
	return payload
}
