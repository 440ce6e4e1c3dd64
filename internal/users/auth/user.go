// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package auth implements the writer identity and session management layer.

It defines the core domain entities (User, Session) and the logic for
registration, login, session rotation, and account recovery.

# Architecture

This layer is the "Truth" of the identity system. Entities defined here have
no external dependencies and encapsulate all business rules related to who a
writer or reader is.
*/
package auth

import (
	"time"

	"github.com/inkwellhq/inkwell/internal/platform/sec"
)

// # Domain Entities

// User represents a registered writer or reader on the Inkwell platform.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	PenName      string       `json:"pen_name"`
	Bio          string       `json:"bio,omitempty"`
	Location     string       `json:"location,omitempty"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	// SocialLinks maps a platform name (e.g. "mastodon") to a profile URL.
	SocialLinks map[string]string `json:"social_links,omitempty"`
	Role        sec.UserRole      `json:"role"`
	IsVerified  bool              `json:"is_verified"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Session represents an active refresh-token session on a single device.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Field names shared between validation and JSON payloads in the identity domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPenName         = "pen_name"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
