// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package session

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/sec"
)

func newTestCodec(t *testing.T) *sec.TokenCodec {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return sec.NewTokenCodec("unit-test-secret-thats-long-enough", constants.SessionIssuer, time.Hour, logger)
}

// requestWithCookies replays the cookies a recorder captured onto a fresh request.
func requestWithCookies(recorder *httptest.ResponseRecorder) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}
	return request
}

func TestUserSlot_RoundTrip(t *testing.T) {
	slot := NewUserSlot(newTestCodec(t), false)

	recorder := httptest.NewRecorder()
	require.NoError(t, slot.Set(recorder, "u-1", "ayse@kervan.shop", false))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	payload := slot.Get(requestWithCookies(recorder))
	require.NotNil(t, payload)
	assert.Equal(t, "u-1", payload.UserID)
	assert.Equal(t, "ayse@kervan.shop", payload.Email)
	assert.False(t, payload.IsAdmin)
}

func TestSlot_MissingCookieIsNil(t *testing.T) {
	slot := NewUserSlot(newTestCodec(t), false)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, slot.Get(request))
}

func TestSlot_TamperedTokenIsNil(t *testing.T) {
	slot := NewUserSlot(newTestCodec(t), false)

	recorder := httptest.NewRecorder()
	require.NoError(t, slot.Set(recorder, "u-1", "ayse@kervan.shop", false))

	cookie := recorder.Result().Cookies()[0]
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"})

	assert.Nil(t, slot.Get(request))
}

func TestAdminSlot_RejectsNonAdminToken(t *testing.T) {
	codec := newTestCodec(t)
	adminSlot := NewAdminSlot(codec, false)

	// A valid user token smuggled into the admin_session cookie must read
	// back as no session at all.
	token, err := codec.Sign("u-2", "mehmet@kervan.shop", false)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.AdminSessionCookieName, Value: token})

	assert.Nil(t, adminSlot.Get(request))
}

func TestAdminSlot_AcceptsAdminToken(t *testing.T) {
	adminSlot := NewAdminSlot(newTestCodec(t), false)

	recorder := httptest.NewRecorder()
	require.NoError(t, adminSlot.Set(recorder, "a-1", "ops@kervan.shop", true))

	payload := adminSlot.Get(requestWithCookies(recorder))
	require.NotNil(t, payload)
	assert.True(t, payload.IsAdmin)
}

func TestSlots_AreIndependent(t *testing.T) {
	codec := newTestCodec(t)
	manager := NewManager(codec, "unit-test-secret-thats-long-enough", false)

	recorder := httptest.NewRecorder()
	require.NoError(t, manager.User.Set(recorder, "u-3", "zeynep@kervan.shop", false))

	request := requestWithCookies(recorder)

	// Only the user slot is populated.
	assert.NotNil(t, manager.User.Get(request))
	assert.Nil(t, manager.Admin.Get(request))
}

func TestSlot_ClearExpiresCookie(t *testing.T) {
	slot := NewUserSlot(newTestCodec(t), false)

	recorder := httptest.NewRecorder()
	slot.Clear(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestManager_IssueCSRFToken(t *testing.T) {
	manager := NewManager(newTestCodec(t), "unit-test-secret-thats-long-enough", false)

	recorder := httptest.NewRecorder()
	token, err := manager.IssueCSRFToken(recorder)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.CSRFCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The cookie stores the digest, never the raw token.
	assert.NotEqual(t, token, cookies[0].Value)
	assert.True(t, sec.CSRFTokenMatches(token, cookies[0].Value, "unit-test-secret-thats-long-enough"))
}
