// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

// Package auth implements account lifecycle and credential verification for
// the Kervan storefront.
//
// # Architecture
//
// Entities in this file represent the "Truth" of the identity domain.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
package auth

import (
	"time"
)

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"    // Back-office access via the admin session slot.
	UserRoleCustomer UserRole = "customer" // Default role for registered shoppers.
)

// User represents a registered account on the Kervan storefront.
//
// # Rules
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively by the auth service.
//   - Role decides whether the account may open an admin session; it never
//     grants extra power to the regular shopper session.
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the account may authenticate into the admin slot.
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
