// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/sec"
)

func csrfProtected(t *testing.T) http.Handler {
	t.Helper()
	return RequireCSRF(testSecret)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
}

func TestRequireCSRF_SafeVerbsPassThrough(t *testing.T) {
	handler := csrfProtected(t)

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(method, "/cart", nil))
		assert.Equal(t, http.StatusOK, recorder.Code, "method %s", method)
	}
}

func TestRequireCSRF_MissingHeader(t *testing.T) {
	handler := csrfProtected(t)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/cart", nil))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	body := decodeErrorBody(t, recorder)
	assert.Equal(t, "CSRF_TOKEN_MISSING", body["code"])
}

func TestRequireCSRF_MissingCookie(t *testing.T) {
	handler := csrfProtected(t)

	request := httptest.NewRequest(http.MethodPost, "/cart", nil)
	request.Header.Set(constants.HeaderCSRFToken, "some-token")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	body := decodeErrorBody(t, recorder)
	assert.Equal(t, "CSRF_TOKEN_INVALID", body["code"])
}

func TestRequireCSRF_DigestMismatch(t *testing.T) {
	handler := csrfProtected(t)

	token, err := sec.NewCSRFToken()
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/cart", nil)
	request.Header.Set(constants.HeaderCSRFToken, token)
	// Digest computed over a different token.
	request.AddCookie(&http.Cookie{
		Name:  constants.CSRFCookieName,
		Value: sec.CSRFDigest("another-token", testSecret),
	})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	body := decodeErrorBody(t, recorder)
	assert.Equal(t, "CSRF_TOKEN_INVALID", body["code"])
}

func TestRequireCSRF_ValidPairPasses(t *testing.T) {
	handler := csrfProtected(t)

	token, err := sec.NewCSRFToken()
	require.NoError(t, err)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		request := httptest.NewRequest(method, "/cart", nil)
		request.Header.Set(constants.HeaderCSRFToken, token)
		request.AddCookie(&http.Cookie{
			Name:  constants.CSRFCookieName,
			Value: sec.CSRFDigest(token, testSecret),
		})

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code, "method %s", method)
	}
}
