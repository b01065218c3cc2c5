// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Window sizes, burst capacities, and sweep intervals.
  - Security: Cookie names, token lifetimes, and header keys.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kervan-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Global IP Rate Limiting (token bucket, per connection)

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Purpose Throttling (fixed window, per action)

const (
	// ThrottleSweepInterval is how often expired fixed-window records are evicted.
	// Advisory housekeeping only: expired records are also treated as fresh on
	// their next lookup regardless of sweep timing.
	ThrottleSweepInterval = 15 * time.Minute

	// LoginWindow and LoginMaxAttempts bound credential attempts per IP.
	LoginWindow      = 5 * time.Minute
	LoginMaxAttempts = 5

	// RegisterWindow and RegisterMaxAttempts bound account creation per IP.
	RegisterWindow      = 1 * time.Hour
	RegisterMaxAttempts = 10

	// PasswordResetWindow and PasswordResetMaxAttempts bound reset requests
	// per email, so a distributed attacker cannot exhaust one account.
	PasswordResetWindow      = 1 * time.Hour
	PasswordResetMaxAttempts = 3

	// CheckoutWindow and CheckoutMaxAttempts bound payment attempts per user.
	CheckoutWindow      = 10 * time.Minute
	CheckoutMaxAttempts = 10
)

// # Throttle Purposes (rate-limit key prefixes)

const (
	PurposeLogin         = "login"
	PurposeRegister      = "register"
	PurposePasswordReset = "password-reset"
	PurposeCheckout      = "checkout"
)

// # Sessions & CSRF

const (
	// SessionCookieName is the cookie slot holding the user session token.
	SessionCookieName = "session"

	// AdminSessionCookieName is the cookie slot holding the admin session token.
	// The two slots transition independently: a browser may be authenticated
	// in one and anonymous in the other.
	AdminSessionCookieName = "admin_session"

	// SessionTTL is the validity window of a signed session token and its cookie.
	SessionTTL = 7 * 24 * time.Hour

	// CSRFCookieName is the cookie holding the HMAC digest of the issued CSRF token.
	CSRFCookieName = "csrf-token"

	// CSRFTokenTTL is the lifetime of an issued CSRF token digest cookie.
	CSRFTokenTTL = 24 * time.Hour

	// HeaderCSRFToken is the request header the CSRF guard reads the token from.
	// The guard never reads the body, to avoid consuming the request stream.
	HeaderCSRFToken = "X-CSRF-Token"

	// SessionIssuer is the standard 'iss' claim in signed session tokens.
	SessionIssuer = "kervan.shop"

	// MinSecretLength is the deployment-hygiene floor for the signing secret.
	MinSecretLength = 32

	// PlaceholderSecret is the known sample value shipped in .env templates.
	PlaceholderSecret = "change-me-in-production"
)

// # HTTP Headers

const (
	HeaderXRequestID         = "X-Request-ID"
	HeaderXRealIP            = "X-Real-IP"
	HeaderXForwardedFor      = "X-Forwarded-For"
	HeaderOrigin             = "Origin"
	HeaderRetryAfter         = "Retry-After"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldApp     = "app"
	FieldVersion = "version"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
	SchemaShop    = "shop"
	SchemaUsers   = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken = "auth:reset_token:"
	RedisPrefixThrottle   = "throttle:"
	RedisPrefixCart       = "shop:cart:"
)
