// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package auth

import (
	"context"
	"time"
)

// UserRepository defines the persistence contract for account records.
//
// # Why an interface?
//
// The service layer depends only on this contract, so unit tests inject
// in-memory fakes and never touch PostgreSQL.
type UserRepository interface {
	// Create persists a new account.
	Create(ctx context.Context, user *User) error

	// FindByEmail retrieves an account by its unique email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID retrieves an account by its primary key.
	FindByID(ctx context.Context, id string) (*User, error)

	// UpdatePassword replaces only the password hash for a specific account.
	UpdatePassword(ctx context.Context, userID, newHash string) error
}

// ResetTokenRepository stores password-reset token digests with expiry.
//
// Tokens are single-use: Consume must atomically return and invalidate the
// record, so a stolen reset link cannot be replayed.
type ResetTokenRepository interface {
	// Save associates a token digest with a user for the given TTL.
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error

	// Consume atomically fetches and deletes the digest, returning the user
	// ID it was issued for. Returns [dberr.ErrNotFound]-compatible errors for
	// unknown or expired digests.
	Consume(ctx context.Context, tokenHash string) (string, error)
}
