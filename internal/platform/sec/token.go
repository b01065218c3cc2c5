// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing,
// CSRF digests) from the domain logic. It acts as an Infrastructure service
// injected into the Application layer via small interfaces.
package sec

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kervanlab/kervan/internal/platform/constants"
)

// SessionPayload represents the claims embedded inside a signed session token.
//
// # Why custom claims?
//
// By embedding the UserID, Email, and IsAdmin flag directly inside the token,
// the auth guards can reconstruct the active principal WITHOUT querying the
// database on every single API request. The payload is immutable once issued:
// the identity it asserts holds for the lifetime of the token.
type SessionPayload struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token payload small.
	UserID  string `json:"uid"`
	Email   string `json:"eml"`
	IsAdmin bool   `json:"adm"`
}

// TokenCodec signs and verifies session tokens using HS256 with a symmetric secret.
//
// # Statelessness
//
// Tokens are self-contained: nothing is stored server-side, and logout only
// removes the client-held cookie. A captured token remains cryptographically
// valid until its natural expiry.
type TokenCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenCodec creates a codec for session tokens.
//
// It warns — but does not fail — when the secret is shorter than
// [constants.MinSecretLength] characters or matches the known placeholder.
// This is a deployment hygiene check, not a runtime gate.
func NewTokenCodec(secret, issuer string, ttl time.Duration, logger *slog.Logger) *TokenCodec {
	if len(secret) < constants.MinSecretLength {
		logger.Warn("session_secret_too_short",
			slog.Int("length", len(secret)),
			slog.Int("minimum", constants.MinSecretLength),
		)
	}
	if secret == constants.PlaceholderSecret {
		logger.Warn("session_secret_is_placeholder")
	}

	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Sign encodes a session payload into a compact, URL-safe signed token.
func (codec *TokenCodec) Sign(userID, email string, isAdmin bool) (string, error) {
	currentTime := time.Now()
	claims := SessionPayload{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(codec.ttl)),
		},
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(codec.secret)
}

// Verify checks the signature integrity and expiry of a token string.
//
// It returns the decoded payload only if both checks pass, and nil for any
// failure: bad signature, expired token, malformed input, or an unexpected
// signing method. Library errors are absorbed here and normalized to
// "no valid session" — they never propagate to callers.
func (codec *TokenCodec) Verify(tokenString string) *SessionPayload {
	token, err := jwt.ParseWithClaims(tokenString, &SessionPayload{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return codec.secret, nil
	})

	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*SessionPayload)
	if !ok || !token.Valid {
		return nil
	}

	return claims
}
