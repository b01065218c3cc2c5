// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/mail"
	"github.com/kervanlab/kervan/internal/platform/sec"
	"github.com/kervanlab/kervan/pkg/uuid"
)

// Service implements account authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login, or
// reset logic must be reviewed before merging.
type Service struct {
	userRepository  UserRepository
	resetRepository ResetTokenRepository
	mailer          mail.Mailer
	logger          *slog.Logger
}

// NewService constructs the auth [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	mailer mail.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:  userRepo,
		resetRepository: resetRepo,
		mailer:          mailer,
		logger:          logger,
	}
}

// RegisterInput holds the data required to enroll a new shopper.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// Register validates, hashes, and persists a brand new account.
//
// # Returns
//   - A pointer to the newly created [*User].
//   - Returns [apperr.Conflict] if the email is already registered.
//
// # Business Rules
//   - Emails must be unique.
//   - Default role is always 'customer'; admin accounts are promoted
//     out-of-band, never through registration.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	// ── 1. Uniqueness Check ───────────────────────────────────────────────

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Entity Construction ────────────────────────────────────────────

	user := &User{
		ID:           uuid.New(), // Time-sortable ID to prevent PG index fragmentation.
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         UserRoleCustomer, // Rule: Default role is always Customer
	}

	// ── 4. Persistence ────────────────────────────────────────────────────

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// Login validates shopper credentials and returns the account.
//
// # Returns
//   - The authenticated [*User]; the handler turns it into a session cookie.
//   - Returns [apperr.Unauthorized] if credentials do not match.
//
// The error is identical for unknown email and wrong password to prevent
// account enumeration.
func (service *Service) Login(ctx context.Context, input LoginInput) (*User, error) {
	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Bcrypt comparison is constant-time by construction.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return user, nil
}

// AdminLogin validates credentials AND the admin role in one step.
//
// A correct password on a non-admin account still yields the generic
// Unauthorized: the response must not reveal that the credentials were right
// but the role was wrong.
func (service *Service) AdminLogin(ctx context.Context, input LoginInput) (*User, error) {
	user, err := service.Login(ctx, input)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin() {
		service.logger.Warn("admin_login_role_denied", slog.String("user_id", user.ID))
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return user, nil
}

// ChangePassword rotates the password of an authenticated account.
//
// # Business Rules
//   - The current password must verify before any change is made.
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return apperr.Unauthorized("Authentication required")
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("auth_service_change_password_failed: %w", err)
	}

	return nil
}

// RequestPasswordReset issues a single-use reset token and mails it.
//
// # Anti-Enumeration
//
// The operation reports success whether or not the email belongs to an
// account. Unknown addresses are logged server-side and nothing else happens.
func (service *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(ctx, email)
	if err != nil {
		service.logger.Info("password_reset_unknown_email", slog.String("email", email))
		return nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_reset_token_failed: %w", err)
	}

	// Only the digest is stored; the raw token travels once, in the email.
	if err := service.resetRepository.Save(ctx, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return fmt.Errorf("auth_service_reset_save_failed: %w", err)
	}

	message := mail.Message{
		To:      user.Email,
		Subject: "Kervan şifre sıfırlama",
		Body:    fmt.Sprintf("Şifrenizi sıfırlamak için bu kodu kullanın: %s (30 dakika geçerlidir)", token),
	}
	if err := service.mailer.Send(ctx, message); err != nil {
		return fmt.Errorf("auth_service_reset_mail_failed: %w", err)
	}

	return nil
}

// ResetPassword redeems a reset token and installs a new password.
//
// # Returns
//   - Returns [apperr.Unauthorized] for unknown, expired, or already
//     consumed tokens.
func (service *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := service.resetRepository.Consume(ctx, sec.HashToken(token))
	if err != nil {
		return apperr.Unauthorized("Invalid or expired reset token")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("auth_service_reset_password_failed: %w", err)
	}

	service.logger.Info("password_reset_completed", slog.String("user_id", userID))
	return nil
}
