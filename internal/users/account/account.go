// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package account manages profile self-service and back-office user
// administration. Credential changes stay in the auth package; this one
// only touches identity metadata and role assignment.
package account

import (
	"context"

	"github.com/kervanlab/kervan/internal/users/auth"
	"github.com/kervanlab/kervan/pkg/pagination"
)

// AccountRepository defines the persistence contract for account management.
type AccountRepository interface {
	// FindByID retrieves an account by its primary key.
	FindByID(ctx context.Context, id string) (*auth.User, error)

	// Update persists changes to mutable profile fields.
	Update(ctx context.Context, user *auth.User) error

	// List returns a page of accounts ordered by creation time, newest
	// first, together with the total count.
	List(ctx context.Context, params pagination.Params) ([]auth.User, int, error)

	// SetRole changes the authorization level of an account.
	SetRole(ctx context.Context, userID string, role auth.UserRole) error

	// SoftDelete marks an account as deleted without removing the row.
	SoftDelete(ctx context.Context, userID string) error
}
