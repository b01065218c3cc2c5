// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/ratelimit"
)

func throttled(store ratelimit.Store, max int) http.Handler {
	return Throttle(store, constants.PurposeLogin, 5*time.Minute, max, SubjectIP)(
		http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}),
	)
}

func loginRequest(ip string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/login", nil)
	request.Header.Set(constants.HeaderXRealIP, ip)
	return request
}

func TestThrottle_AdvertisesWindowState(t *testing.T) {
	handler := throttled(ratelimit.NewMemoryStore(), 5)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, loginRequest("203.0.113.7"))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "5", recorder.Header().Get(constants.HeaderRateLimitLimit))
	assert.Equal(t, "4", recorder.Header().Get(constants.HeaderRateLimitRemaining))
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderRateLimitReset))
	assert.Empty(t, recorder.Header().Get(constants.HeaderRetryAfter))
}

func TestThrottle_RejectsWithRetryAfter(t *testing.T) {
	handler := throttled(ratelimit.NewMemoryStore(), 2)

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, loginRequest("203.0.113.7"))
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, loginRequest("203.0.113.7"))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "0", recorder.Header().Get(constants.HeaderRateLimitRemaining))

	retryAfter, err := strconv.Atoi(recorder.Header().Get(constants.HeaderRetryAfter))
	require.NoError(t, err)
	assert.Positive(t, retryAfter)
	assert.LessOrEqual(t, retryAfter, int((5 * time.Minute).Seconds()))

	body := decodeErrorBody(t, recorder)
	assert.Equal(t, "RATE_LIMITED", body["code"])
}

func TestThrottle_SeparateIPsSeparateWindows(t *testing.T) {
	handler := throttled(ratelimit.NewMemoryStore(), 1)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, loginRequest("203.0.113.7"))
	require.Equal(t, http.StatusOK, first.Code)

	blocked := httptest.NewRecorder()
	handler.ServeHTTP(blocked, loginRequest("203.0.113.7"))
	require.Equal(t, http.StatusTooManyRequests, blocked.Code)

	other := httptest.NewRecorder()
	handler.ServeHTTP(other, loginRequest("198.51.100.1"))
	assert.Equal(t, http.StatusOK, other.Code)
}
