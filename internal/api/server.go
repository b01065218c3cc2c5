// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kervanlab/kervan/internal/catalog/category"
	"github.com/kervanlab/kervan/internal/catalog/product"
	"github.com/kervanlab/kervan/internal/platform/config"
	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/middleware"
	"github.com/kervanlab/kervan/internal/platform/session"
	"github.com/kervanlab/kervan/internal/shop/cart"
	"github.com/kervanlab/kervan/internal/shop/favorite"
	"github.com/kervanlab/kervan/internal/shop/order"
	"github.com/kervanlab/kervan/internal/shop/review"
	"github.com/kervanlab/kervan/internal/users/account"
	"github.com/kervanlab/kervan/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles sessions, registration, and password recovery.
	Auth *auth.Handler

	// Account handles profiles and back-office user administration.
	Account *account.Handler

	// Category and Product expose the storefront catalog.
	Category *category.Handler
	Product  *product.Handler

	// Cart, Favorite, Order, and Review form the shop domain.
	Cart     *cart.Handler
	Favorite *favorite.Handler
	Order    *order.Handler
	Review   *review.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, sessions *session.Manager, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. The CSRF guard sits
	// last so every state-changing route is covered without opting in.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(sessions))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)
	r.Use(middleware.RequireCSRF(cfg.SessionSecret))

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/account", h.Account.Routes())
		api.Mount("/categories", h.Category.Routes())
		api.Mount("/products", h.Product.Routes())
		api.Mount("/cart", h.Cart.Routes())
		api.Mount("/favorites", h.Favorite.Routes())
		api.Mount("/orders", h.Order.Routes())
		api.Mount("/reviews", h.Review.Routes())

		// Back-office routes, each group behind the admin session slot.
		api.Route("/admin", func(admin chi.Router) {
			admin.Mount("/users", h.Account.AdminRoutes())
			admin.Mount("/categories", h.Category.AdminRoutes())
			admin.Mount("/products", h.Product.AdminRoutes())
			admin.Mount("/orders", h.Order.AdminRoutes())
			admin.Mount("/reviews", h.Review.AdminRoutes())
		})
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

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
