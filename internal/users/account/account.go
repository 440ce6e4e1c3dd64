// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package account handles user profile management and security settings.

It provides functionality for users to view and update their private identity
data, expose a public writer profile, and manage their active device sessions.

# Architecture

  - Entities: PublicProfile, SessionInfo (DTOs).
  - Domain: This package depends on the auth package for the User entity.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"context"
	"time"

	"github.com/inkwellhq/inkwell/internal/users/auth"
)

// # Domain Entities

// PublicProfile is the reader-facing view of a writer's account.
// It omits email, verification state, and any other private fields.
type PublicProfile struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	PenName     string            `json:"pen_name"`
	Bio         string            `json:"bio,omitempty"`
	Location    string            `json:"location,omitempty"`
	AvatarURL   string            `json:"avatar_url,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	JoinedAt    time.Time         `json:"joined_at"`
}

// NewPublicProfile projects an account entity onto its public view.
func NewPublicProfile(user *auth.User) *PublicProfile {
	return &PublicProfile{
		ID:          user.ID,
		Username:    user.Username,
		PenName:     user.PenName,
		Bio:         user.Bio,
		Location:    user.Location,
		AvatarURL:   user.AvatarURL,
		SocialLinks: user.SocialLinks,
		JoinedAt:    user.CreatedAt,
	}
}

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID         string    `json:"id"`
	DeviceName string    `json:"device_name"` // e.g. "Chrome on Windows"
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {

	// FindByID retrieves a user record by their unique ID.
	FindByID(context context.Context, id string) (*auth.User, error)

	// Update modifies the mutable profile fields of an existing user.
	Update(context context.Context, user *auth.User) error

	// SoftDelete flags an account as logically deleted.
	SoftDelete(context context.Context, id string) error
}

// SessionRepository defines the visibility and revocation contract for user sessions.
type SessionRepository interface {

	// FindActiveByUserID lists all valid, non-expired sessions for a user.
	FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error)

	// Revoke marks a specific session as revoked. The userID acts as an
	// ownership constraint so one user cannot revoke another's sessions.
	Revoke(context context.Context, userID, sessionID string) error

	// RevokeOthers revokes all active sessions except for a target session.
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	// RevokeAll terminates every session for a user.
	RevokeAll(context context.Context, userID string) error
}
