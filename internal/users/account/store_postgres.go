// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package account (Postgres) implements the storage layer for profile and
session data.

# Schema Table Mapping
  - users.account: Master identity and profile data.
  - users.session: Active device sessions and security metadata.
*/
package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] by delegating to
// the identity package's user repository. Both packages operate on the same
// users.account rows; duplicating the SQL here would just invite drift.
type PostgresAccountRepository struct {
	*auth.PostgresUserRepository
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{auth.NewUserRepository(pool)}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # SessionRepository Methods

/*
FindActiveByUserID lists all valid, non-expired sessions for a user.

Description: Projects raw session rows onto the transport-safe [SessionInfo]
view. Token hashes never leave the database.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []SessionInfo: List of active devices, newest first
  - error: Retrieval errors
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error) {
	const query = `
		SELECT id, useragent, ipaddress, createdat, expiresat
		FROM users.session
		WHERE userid = $1 AND isrevoked = FALSE AND expiresat > NOW()
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_sessions_list_failed: %w", err)
	}
	defer rows.Close()

	sessions := make([]SessionInfo, 0)
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.DeviceName, &info.IPAddress, &info.CreatedAt, &info.ExpiresAt); err != nil {
			return nil, fmt.Errorf("postgres_account_sessions_scan_failed: %w", err)
		}
		sessions = append(sessions, info)
	}

	return sessions, rows.Err()
}

/*
Revoke marks a specific session as revoked, constrained to the owning user.

Parameters:
  - context: context.Context
  - userID: string (ownership constraint)
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE id = $1 AND userid = $2"
	_, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("postgres_account_session_revoke_failed: %w", err)
	}
	return nil
}

/*
RevokeOthers revokes all active sessions except for a target session.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string (the whitelist target)

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND id != $2 AND isrevoked = FALSE"
	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	if err != nil {
		return fmt.Errorf("postgres_account_session_revoke_others_failed: %w", err)
	}
	return nil
}

/*
RevokeAll terminates every session for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND isrevoked = FALSE"
	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_account_session_revoke_all_failed: %w", err)
	}
	return nil
}
