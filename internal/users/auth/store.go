// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given email.
	FindByEmail(context context.Context, email string) (*User, error)

	// FindByUsername returns the account with the given username.
	FindByUsername(context context.Context, username string) (*User, error)

	// Create persists a brand-new user account.
	Create(context context.Context, user *User) error

	// Update persists changes to mutable profile fields.
	Update(context context.Context, user *User) error

	// UpdatePassword replaces only the user's password hash.
	UpdatePassword(context context.Context, userID, newHash string) error

	// SoftDelete marks the account as deleted without removing the row.
	SoftDelete(context context.Context, id string) error

	// MarkVerified updates the user's status to isverified = true.
	MarkVerified(context context.Context, userID string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	// Create persists a new tracking session for an authenticated login.
	Create(context context.Context, session *Session) error

	// FindByTokenHash returns the active session matching the given token hash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// ListByUser returns every active session belonging to the userID,
	// newest first.
	ListByUser(context context.Context, userID string) ([]*Session, error)

	// Revoke marks a specific session as permanently invalidated.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll revokes every active session belonging to the userID.
	RevokeAll(context context.Context, userID string) error

	// RevokeOthers revokes all of the userID's sessions except the current one.
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	// DeleteExpired physically removes sessions whose ExpiresAt is in the past.
	DeleteExpired(context context.Context) error
}

// # Volatile Data Access

// ResetTokenRepository defines the contract for storing volatile password reset tokens.
type ResetTokenRepository interface {

	// Set stores a reset token associated with a userID for a limited duration.
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	// Get retrieves the userID associated with a given reset token.
	Get(context context.Context, token string) (string, error)

	// Delete removes a reset token after successful use.
	Delete(context context.Context, token string) error
}

// VerificationTokenRepository defines the contract for storing volatile email verification tokens.
type VerificationTokenRepository interface {

	// Set stores a verification token associated with a userID.
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	// Get retrieves the userID associated with a given verification token.
	Get(context context.Context, token string) (string, error)

	// Delete removes a verification token after successful use.
	Delete(context context.Context, token string) error
}
