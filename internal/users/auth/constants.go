// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package auth

import "time"

const (
	// ResetTokenTTL is how long a password-reset token stays redeemable.
	ResetTokenTTL = 30 * time.Minute

	// ResetTokenLength is the entropy (in bytes) of a reset token.
	ResetTokenLength = 32

	// PasswordMinLength is the minimum accepted password length.
	PasswordMinLength = 8
)
