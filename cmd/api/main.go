// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Command api is the entry point for the Kervan storefront API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build session codec, throttle store, and payment gateway.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kervanlab/kervan/internal/api"
	"github.com/kervanlab/kervan/internal/catalog/category"
	"github.com/kervanlab/kervan/internal/catalog/product"
	"github.com/kervanlab/kervan/internal/platform/config"
	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/mail"
	"github.com/kervanlab/kervan/internal/platform/migration"
	"github.com/kervanlab/kervan/internal/platform/payment"
	pgstore "github.com/kervanlab/kervan/internal/platform/postgres"
	"github.com/kervanlab/kervan/internal/platform/ratelimit"
	redisstore "github.com/kervanlab/kervan/internal/platform/redis"
	"github.com/kervanlab/kervan/internal/platform/sec"
	"github.com/kervanlab/kervan/internal/platform/session"
	"github.com/kervanlab/kervan/internal/shop/cart"
	"github.com/kervanlab/kervan/internal/shop/favorite"
	"github.com/kervanlab/kervan/internal/shop/order"
	"github.com/kervanlab/kervan/internal/shop/review"
	"github.com/kervanlab/kervan/internal/users/account"
	"github.com/kervanlab/kervan/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Kervan] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Long-lived context for background goroutines (IP limiter cleanup,
	// throttle sweeper). Cancelled on shutdown.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Sessions, Throttling, Payments ─────────────────────────────────
	codec := sec.NewTokenCodec(cfg.SessionSecret, constants.SessionIssuer, constants.SessionTTL, log)
	sessions := session.NewManager(codec, cfg.SessionSecret, cfg.IsProduction())

	// Fixed-window throttling lives in Redis so every instance shares the
	// same counters. The memory store remains available for single-node
	// setups and tests.
	throttleStore := ratelimit.NewRedisStore(rdb, log)

	var gateway payment.Gateway
	if cfg.StripeSecretKey == "" {
		log.Warn("payment_gateway_mock_enabled")
		gateway = payment.NewMockGateway(log)
	} else {
		gateway, err = payment.NewStripeGateway(cfg.StripeSecretKey, log)
		must(log, err, "initialize stripe gateway")
	}

	mailer := mail.NewLogMailer(log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	resetRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, resetRepository, mailer, log)
	authHandler := auth.NewHandler(authService, sessions, throttleStore)

	accountRepository := account.NewAccountRepository(pool)
	accountService := account.NewService(accountRepository, log)
	accountHandler := account.NewHandler(accountService)

	categoryRepository := category.NewPostgresRepository(pool)
	categoryService := category.NewService(categoryRepository, log)
	categoryHandler := category.NewHandler(categoryService)

	productRepository := product.NewPostgresRepository(pool)
	productService := product.NewService(productRepository, log)
	productHandler := product.NewHandler(productService)

	cartRepository := cart.NewRedisRepository(rdb)
	cartService := cart.NewService(cartRepository, productRepository, log)
	cartHandler := cart.NewHandler(cartService)

	favoriteRepository := favorite.NewPostgresRepository(pool)
	favoriteService := favorite.NewService(favoriteRepository, productRepository)
	favoriteHandler := favorite.NewHandler(favoriteService)

	orderRepository := order.NewPostgresRepository(pool)
	orderService := order.NewService(orderRepository, cartRepository, productRepository, gateway, log)
	orderHandler := order.NewHandler(orderService, throttleStore)

	reviewRepository := review.NewPostgresRepository(pool)
	reviewService := review.NewService(reviewRepository, productRepository)
	reviewHandler := review.NewHandler(reviewService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Category:  categoryHandler,
		Product:   productHandler,
		Cart:      cartHandler,
		Favorite:  favoriteHandler,
		Order:     orderHandler,
		Review:    reviewHandler,
	}

	server := api.NewServer(serverCtx, cfg, log, sessions, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	serverCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
