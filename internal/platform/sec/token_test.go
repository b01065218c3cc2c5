// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package sec

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-that-is-long-enough!!"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCodec(ttl time.Duration) *TokenCodec {
	return NewTokenCodec(testSecret, "kervan.shop", ttl, discardLogger())
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newCodec(time.Hour)

	signed, err := codec.Sign("user-42", "ayse@example.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	payload := codec.Verify(signed)
	require.NotNil(t, payload)
	assert.Equal(t, "user-42", payload.UserID)
	assert.Equal(t, "ayse@example.com", payload.Email)
	assert.False(t, payload.IsAdmin)
	assert.Equal(t, "kervan.shop", payload.Issuer)
}

func TestTokenCodec_AdminFlagSurvives(t *testing.T) {
	codec := newCodec(time.Hour)

	signed, err := codec.Sign("admin-1", "root@kervan.shop", true)
	require.NoError(t, err)

	payload := codec.Verify(signed)
	require.NotNil(t, payload)
	assert.True(t, payload.IsAdmin)
}

func TestTokenCodec_ExpiredTokenIsNil(t *testing.T) {
	codec := newCodec(-time.Minute)

	signed, err := codec.Sign("user-42", "ayse@example.com", false)
	require.NoError(t, err)

	assert.Nil(t, codec.Verify(signed))
}

func TestTokenCodec_TamperedTokenIsNil(t *testing.T) {
	codec := newCodec(time.Hour)

	signed, err := codec.Sign("user-42", "ayse@example.com", false)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	parts[1] = parts[1][:len(parts[1])-2] + "xx"

	assert.Nil(t, codec.Verify(strings.Join(parts, ".")))
}

func TestTokenCodec_WrongSecretIsNil(t *testing.T) {
	codec := newCodec(time.Hour)
	other := NewTokenCodec("a-completely-different-secret-string!!", "kervan.shop", time.Hour, discardLogger())

	signed, err := other.Sign("user-42", "ayse@example.com", false)
	require.NoError(t, err)

	assert.Nil(t, codec.Verify(signed))
}

func TestTokenCodec_RejectsUnexpectedSigningMethod(t *testing.T) {
	codec := newCodec(time.Hour)

	// alg=none tokens must never verify, regardless of payload.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, SessionPayload{UserID: "user-42"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Nil(t, codec.Verify(tokenString))
}

func TestTokenCodec_GarbageInputIsNil(t *testing.T) {
	codec := newCodec(time.Hour)

	assert.Nil(t, codec.Verify(""))
	assert.Nil(t, codec.Verify("not-a-token"))
	assert.Nil(t, codec.Verify("a.b.c"))
}
