// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/users/auth"
	"github.com/kervanlab/kervan/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for profiles and user administration.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of an account.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of profile fields.
type UpdateProfileInput struct {
	FullName *string
}

/*
UpdateProfile applies a partial set of changes to an account's metadata.

Fetches the existing state, overrides provided fields, and synchronizes the
change to persistent storage.
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.FullName != nil {
		user.FullName = *input.FullName
	}

	if err := service.accountRepository.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Administration

// ListUsers returns a page of all accounts for the back office.
func (service *Service) ListUsers(ctx context.Context, params pagination.Params) ([]auth.User, int, error) {
	users, total, err := service.accountRepository.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// SetRole changes the authorization level of an account.
//
// # Business Rules
//   - An admin cannot demote their own account; losing the last admin would
//     lock the back office permanently.
func (service *Service) SetRole(ctx context.Context, actorID, targetID string, role auth.UserRole) error {
	if actorID == targetID && role != auth.UserRoleAdmin {
		return apperr.Unprocessable("You cannot demote your own account")
	}

	if _, err := service.accountRepository.FindByID(ctx, targetID); err != nil {
		return fmt.Errorf("account_service_set_role_lookup_failed: %w", err)
	}

	if err := service.accountRepository.SetRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("account_service_set_role_failed: %w", err)
	}

	service.logger.Info("user_role_changed",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
		slog.String("role", string(role)),
	)
	return nil
}

// DeactivateUser soft-deletes an account.
//
// The row survives for order history and audits; the account simply stops
// resolving in lookups.
func (service *Service) DeactivateUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return apperr.Unprocessable("You cannot deactivate your own account")
	}

	if _, err := service.accountRepository.FindByID(ctx, targetID); err != nil {
		return fmt.Errorf("account_service_deactivate_lookup_failed: %w", err)
	}

	if err := service.accountRepository.SoftDelete(ctx, targetID); err != nil {
		return fmt.Errorf("account_service_deactivate_failed: %w", err)
	}

	service.logger.Info("user_deactivated",
		slog.String("actor_id", actorID),
		slog.String("target_id", targetID),
	)
	return nil
}
