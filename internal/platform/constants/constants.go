// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package constants is the single home for fixed platform values: server
timeouts, transport rate limits, header and field names, schema names,
and Redis key prefixes. Anything two layers need to agree on lives here
rather than being repeated as a literal in each.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "inkwell-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout bounds reading an entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout bounds writing a response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds waiting for the next request on a
	// keep-alive connection.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout bounds reading request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for a whole request. The
	// Postgres statement_timeout is derived from it so queries cannot
	// outlive their request.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish
	// when the process is asked to stop.
	ShutdownTimeout = 30 * time.Second
)

// # Transport Rate Limiting (per IP)

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often idle IP buckets are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is the idle period after which an IP bucket
	// is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is stamped into the "iss" claim of every token.
	AuthIssuer = "inkwell.press"

	// RefreshTokenCookieName names the HTTP-only refresh token cookie.
	RefreshTokenCookieName = "refresh_token"

	// RefreshTokenCookiePath scopes that cookie to the auth endpoints
	// so it is never sent with ordinary API calls.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Names

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Database Schemas

const (
	SchemaCore  = "core"
	SchemaUsers = "users"
)

// # Redis Key Prefixes

const (
	RedisPrefixResetToken  = "auth:reset_token:"
	RedisPrefixVerifyToken = "auth:verify_token:"
)
