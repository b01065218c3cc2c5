// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// # CSRF Token Primitives

// CSRFTokenLength is the entropy (in bytes) of an issued CSRF token.
const CSRFTokenLength = 32

// NewCSRFToken generates a random opaque token to hand to the client.
//
// The raw token is returned to the page that requested it; only its HMAC
// digest (see [CSRFDigest]) is stored in the httpOnly cookie. A forged
// request would need both values, which cross-origin script cannot obtain.
func NewCSRFToken() (string, error) {
	return GenerateSecureToken(CSRFTokenLength)
}

// CSRFDigest computes the HMAC-SHA256 digest of a CSRF token under the
// given secret, hex-encoded.
func CSRFDigest(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// CSRFTokenMatches reports whether the supplied token's digest equals the
// stored digest, using a constant-time comparison.
func CSRFTokenMatches(token, storedDigest, secret string) bool {
	expected := CSRFDigest(token, secret)
	return hmac.Equal([]byte(expected), []byte(storedDigest))
}
