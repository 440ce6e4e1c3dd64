// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package middleware is Inkwell's cross-cutting HTTP chain: request
tracing, structured access logs, per-IP rate limiting, panic recovery,
CORS, and JWT authentication. Domain handlers sit at the bottom of this
chain and assume all of it has already run.
*/
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/inkwellhq/inkwell/internal/platform/constants"
	"github.com/inkwellhq/inkwell/internal/platform/ctxutil"
)

// # Request Tracing

// RequestID ensures every request carries a correlation ID, honouring
// one supplied by the client and minting a UUIDv7 otherwise. The ID is
// echoed back in the response header.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				// v7 IDs sort by time, which makes log archaeology easier.
				if uuidV7, err := uuid.NewV7(); err == nil {
					requestID = uuidV7.String()
				} else {
					requestID = uuid.New().String()
				}
			}

			ctx := ctxutil.WithRequestID(request.Context(), requestID)
			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Access Logging

type statusCapture struct {
	http.ResponseWriter
	status int
}

func (capture *statusCapture) WriteHeader(code int) {
	capture.status = code
	capture.ResponseWriter.WriteHeader(code)
}

/*
StructuredLogger emits one log line per finished request and seeds the
context with a request-scoped logger carrying the correlation fields.

Level follows the response class: 5xx logs at error, 4xx at warn,
everything else at info. Authenticated requests also record the caller's
user ID.
*/
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			startedAt := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)

			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			capture := &statusCapture{ResponseWriter: writer, status: http.StatusOK}

			next.ServeHTTP(capture, request.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case capture.status >= 500:
				level = slog.LevelError
			case capture.status >= 400:
				level = slog.LevelWarn
			}

			attrs := []any{
				slog.Int("status", capture.status),
				slog.Int64("latency_ms", time.Since(startedAt).Milliseconds()),
				slog.String("user_agent", request.UserAgent()),
			}
			if claims := ctxutil.GetAuthUser(ctx); claims != nil {
				attrs = append(attrs, slog.String("user_id", claims.UserID))
			}

			requestLogger.Log(ctx, level, "http_request_finished", attrs...)
		})
	}
}

// # Rate Limiting

type ipBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	bucketsMu sync.Mutex
	buckets   = make(map[string]*ipBucket)
)

/*
RateLimit applies a per-IP token bucket to every request. This is the
transport-level guard only; the publishing policy applies its own
per-writer daily cap independently.

Idle buckets are swept on a timer so the map does not grow with every
IP that has ever connected. The sweeper exits when the passed context
is cancelled at shutdown.
*/
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	go sweepIdleBuckets(context)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			clientIP := RealIP(request)

			bucketsMu.Lock()
			bucket, found := buckets[clientIP]
			if !found {
				bucket = &ipBucket{
					limiter: rate.NewLimiter(
						rate.Limit(constants.DefaultRateLimitRPS),
						constants.DefaultRateLimitBurst,
					),
				}
				buckets[clientIP] = bucket
			}
			bucket.lastSeen = time.Now()
			allowed := bucket.limiter.Allow()
			bucketsMu.Unlock()

			if !allowed {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func sweepIdleBuckets(context context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			bucketsMu.Lock()
			for ip, bucket := range buckets {
				if time.Since(bucket.lastSeen) > constants.RateLimitClientTTL {
					delete(buckets, ip)
				}
			}
			bucketsMu.Unlock()
		case <-context.Done():
			return
		}
	}
}

// # Panic Recovery

// PanicRecovery turns a handler panic into a logged 500 instead of a
// dropped connection. The stack trace goes to the request logger.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stackTrace := make([]byte, 2048)
					length := runtime.Stack(stackTrace, false)

					ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
						slog.Any("error", err),
						slog.String("stack", string(stackTrace[:length])),
					)

					writeError(writer, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred")
				}
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig is the slice of configuration the CORS middleware needs.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

/*
CORS grants cross-origin access to any origin in development, and in
production to inkwell.press subdomains plus whatever extra origins the
deployment configures. Preflight OPTIONS requests are answered here and
never reach the router.
*/
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			if originAllowed(cfg, origin) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Authorization, X-Request-ID")
				header.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "300")
			}

			if request.Method == http.MethodOptions {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func originAllowed(cfg AppConfig, origin string) bool {
	if cfg.IsDevelopment() {
		return true
	}
	if strings.HasSuffix(origin, "inkwell.press") {
		return true
	}
	for _, allowed := range cfg.AllowedOrigins() {
		if origin == allowed {
			return true
		}
	}
	return false
}

// # Helpers

// RealIP resolves the client address behind the usual proxy headers,
// falling back to the socket peer.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	host, _, _ := net.SplitHostPort(request.RemoteAddr)
	return host
}

// writeError is for failures that occur before the respond package can
// be involved (rate limiting, panics).
func writeError(writer http.ResponseWriter, status int, code, message string) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(map[string]string{
		constants.FieldCode:  code,
		constants.FieldError: message,
	})
}
