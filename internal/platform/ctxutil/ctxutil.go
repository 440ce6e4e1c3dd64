// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package ctxutil is the typed accessor layer over the request context.
// The middleware chain writes these values; everything downstream reads
// them through here instead of touching context keys directly.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/inkwellhq/inkwell/internal/platform/ctxkey"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

// # Request Tracing

// WithRequestID attaches the correlation ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the correlation ID, or "" when the request never
// passed through the tracing middleware.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches a request-scoped logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger, falling back to the
// process default so callers never need a nil check.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithAuthUser attaches the verified token claims to the context.
func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the caller's claims, or nil for anonymous
// requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}
