// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSRFToken_IsRandomHex(t *testing.T) {
	first, err := NewCSRFToken()
	require.NoError(t, err)
	second, err := NewCSRFToken()
	require.NoError(t, err)

	// Hex encoding doubles the byte length.
	assert.Len(t, first, CSRFTokenLength*2)
	assert.NotEqual(t, first, second)
}

func TestCSRFDigest_IsDeterministicPerSecret(t *testing.T) {
	digest := CSRFDigest("token-value", testSecret)

	assert.Equal(t, digest, CSRFDigest("token-value", testSecret))
	assert.NotEqual(t, digest, CSRFDigest("token-value", "another-secret"))
	assert.NotEqual(t, digest, CSRFDigest("other-token", testSecret))
	assert.NotEqual(t, digest, "token-value")
}

func TestCSRFTokenMatches(t *testing.T) {
	token, err := NewCSRFToken()
	require.NoError(t, err)
	digest := CSRFDigest(token, testSecret)

	assert.True(t, CSRFTokenMatches(token, digest, testSecret))
	assert.False(t, CSRFTokenMatches("forged", digest, testSecret))
	assert.False(t, CSRFTokenMatches(token, digest, "another-secret"))
	assert.False(t, CSRFTokenMatches(token, "not-a-digest", testSecret))
}

func TestHashToken_StableAndOneWay(t *testing.T) {
	hash := HashToken("reset-token")

	assert.Equal(t, hash, HashToken("reset-token"))
	assert.NotEqual(t, hash, HashToken("other-token"))
	assert.Len(t, hash, 64)
	assert.NotContains(t, hash, "reset-token")
}
