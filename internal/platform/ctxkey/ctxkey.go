// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

// Package ctxkey declares the context keys the middleware chain writes.
// The key type is unexported, so no other package can collide with
// these entries even if it stores values under identical strings.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser holds the verified [sec.AuthClaims] of the caller.
	KeyUser key = "user"

	// KeyLogger holds the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"
)
