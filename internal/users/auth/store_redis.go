// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwellhq/inkwell/internal/platform/apperr"
	"github.com/inkwellhq/inkwell/internal/platform/constants"
)

// tokenStore is the shared Redis implementation backing both volatile token
// repositories. Keys are namespaced by prefix and expire via Redis TTL, so
// no cleanup job is needed.
type tokenStore struct {
	client    *redis.Client
	keyPrefix string
	label     string
}

func (store *tokenStore) key(token string) string {
	return store.keyPrefix + token
}

// Set stores a token with its associated userID and TTL.
func (store *tokenStore) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := store.client.Set(context, store.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_%s_token_set_failed: %w", store.label, err)
	}
	return nil
}

// Get retrieves the userID for a given token.
//
// Returns apperr.NotFound if the token is absent or expired.
func (store *tokenStore) Get(context context.Context, token string) (string, error) {
	userID, err := store.client.Get(context, store.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFoundMsg("Token is invalid or expired")
		}
		return "", fmt.Errorf("redis_%s_token_get_failed: %w", store.label, err)
	}
	return userID, nil
}

// Delete removes the token after successful use.
func (store *tokenStore) Delete(context context.Context, token string) error {
	if err := store.client.Del(context, store.key(token)).Err(); err != nil {
		return fmt.Errorf("redis_%s_token_delete_failed: %w", store.label, err)
	}
	return nil
}

// # Reset Token Repository

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
type RedisResetTokenRepository struct {
	tokenStore
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{tokenStore{
		client:    client,
		keyPrefix: constants.RedisPrefixResetToken,
		label:     "reset",
	}}
}

// # Verification Token Repository

// RedisVerificationTokenRepository implements VerificationTokenRepository using Redis.
type RedisVerificationTokenRepository struct {
	tokenStore
}

// NewVerificationTokenRepository creates a new Redis-backed VerificationTokenRepository.
func NewVerificationTokenRepository(client *redis.Client) *RedisVerificationTokenRepository {
	return &RedisVerificationTokenRepository{tokenStore{
		client:    client,
		keyPrefix: constants.RedisPrefixVerifyToken,
		label:     "verify",
	}}
}
