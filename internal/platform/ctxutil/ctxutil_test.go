// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, ctxutil.GetRequestID(context.Background()))
}

func TestLogger_RoundTrip(t *testing.T) {
	logger := slog.Default().With("component", "test")
	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), ctxutil.GetLogger(context.Background()))
}

func TestAuthUser_RoundTrip(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-1", Username: "inkling", Role: "member"}
	ctx := ctxutil.WithAuthUser(context.Background(), claims)
	assert.Same(t, claims, ctxutil.GetAuthUser(ctx))
}

func TestAuthUser_Missing(t *testing.T) {
	assert.Nil(t, ctxutil.GetAuthUser(context.Background()))
}
