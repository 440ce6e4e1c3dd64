// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package redis constructs the shared go-redis client Inkwell uses for
expiring state: password-reset tokens, email-verification tokens, and
any future short-lived caches.

Everything stored here must tolerate loss. Redis is treated strictly as
volatile storage; durable state belongs in Postgres.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second
)

/*
NewClient connects to Redis at the given URL, verifies the connection
with an immediate ping, and returns the client.

Pool sizing is fixed rather than configurable: the auth token workload
is small and bursty, and ten connections with a couple kept idle has
been more than enough.

Parameters:
  - context: bounds the startup ping.
  - redisURL: redis:// connection URL.
  - logger: receives the connection event.
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis_url_parse: %w", err)
	}

	options.PoolSize = 10
	options.MinIdleConns = 2
	options.MaxIdleConns = 5
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	client := redis.NewClient(options)

	// Fail startup now rather than on the first token write.
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// Ping checks Redis health within a bounded timeout. The readiness probe
// reuses this against the live client.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis_ping: %w", err)
	}
	return nil
}
