// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: dev@inkwell.press

/*
Package api assembles the runnable HTTP server: the chi router, the
full middleware chain, and every mounted domain handler. It is the only
place besides cmd/api that touches net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/inkwellhq/inkwell/internal/core/book"
	"github.com/inkwellhq/inkwell/internal/core/bookmark"
	"github.com/inkwellhq/inkwell/internal/platform/config"
	"github.com/inkwellhq/inkwell/internal/platform/constants"
	"github.com/inkwellhq/inkwell/internal/platform/middleware"
	"github.com/inkwellhq/inkwell/internal/users/account"
	"github.com/inkwellhq/inkwell/internal/users/auth"
)

// # Server Definitions

// Server pairs the router with its [http.Server]. One instance exists
// per process, built in main with everything injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers carries every route group the server mounts. Adding a domain
// means adding a field here and a Mount call below, nothing else.
type Handlers struct {
	// Liveness answers /health whenever the process is up.
	Liveness http.HandlerFunc

	// Readiness answers /ready once Postgres and Redis respond.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, sessions).
	Auth *auth.Handler

	// Account handles profile and session management.
	Account *account.Handler

	// Book handles drafting, publishing, and the public catalogue.
	Book *book.Handler

	// Bookmark handles the reader's bookmark shelf.
	Bookmark *bookmark.Handler
}

// # Server Initialization

// NewServer builds the router, installs the middleware chain in its
// required order, and mounts all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Order matters: tracing first so every later stage logs with a
	// request ID, authentication before any mounted routes.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Health Probes
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Versioned API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/books", h.Book.Routes())
		api.Mount("/bookmarks", h.Bookmark.Routes())
		api.Mount("/admin/books", h.Book.AdminRoutes())
		api.Mount("/", h.Account.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe blocks serving requests until the server is shut down
// or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_listening", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests to drain.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
