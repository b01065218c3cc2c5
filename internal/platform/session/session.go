// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

/*
Package session manages browser-held authentication state through cookies.

Two independent cookie slots exist: "session" for regular shoppers and
"admin_session" for back-office operators. Each slot carries its own signed
token and transitions independently, so a browser may be authenticated in one
and anonymous in the other at the same time.

Sessions are stateless: the token itself is the whole session record, there is
no server-side table to look up or invalidate. Logout removes the cookie from
the client; a token captured before logout remains valid until its expiry.
*/
package session

import (
	"net/http"
	"time"

	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/sec"
)

// Slot binds one cookie name to the token codec plus an admission predicate.
//
// The predicate lets the admin slot reject tokens that verify fine but do not
// carry the admin claim, so a user token copied into the admin_session cookie
// reads back as "no session" rather than a degraded admin.
type Slot struct {
	codec      *sec.TokenCodec
	cookieName string
	ttl        time.Duration
	secure     bool
	permit     func(payload *sec.SessionPayload) bool
}

// NewUserSlot creates the slot for the regular shopper session cookie.
func NewUserSlot(codec *sec.TokenCodec, secureCookies bool) *Slot {
	return &Slot{
		codec:      codec,
		cookieName: constants.SessionCookieName,
		ttl:        constants.SessionTTL,
		secure:     secureCookies,
		permit:     func(*sec.SessionPayload) bool { return true },
	}
}

// NewAdminSlot creates the slot for the back-office session cookie. Tokens
// without the admin claim are treated as absent.
func NewAdminSlot(codec *sec.TokenCodec, secureCookies bool) *Slot {
	return &Slot{
		codec:      codec,
		cookieName: constants.AdminSessionCookieName,
		ttl:        constants.SessionTTL,
		secure:     secureCookies,
		permit:     func(payload *sec.SessionPayload) bool { return payload.IsAdmin },
	}
}

// Set signs a fresh token for the principal and writes it into this slot's
// cookie. The cookie is httpOnly and SameSite=Lax; Secure tracks the
// deployment environment so local HTTP development still works.
func (slot *Slot) Set(writer http.ResponseWriter, userID, email string, isAdmin bool) error {
	token, err := slot.codec.Sign(userID, email, isAdmin)
	if err != nil {
		return err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     slot.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(slot.ttl.Seconds()),
		HttpOnly: true,
		Secure:   slot.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Get reads and verifies this slot's cookie.
//
// Any failure mode collapses to nil: cookie absent, signature invalid, token
// expired, or the payload failing the slot's admission predicate. Callers
// only ever distinguish "session" from "no session".
func (slot *Slot) Get(request *http.Request) *sec.SessionPayload {
	cookie, err := request.Cookie(slot.cookieName)
	if err != nil {
		return nil
	}

	payload := slot.codec.Verify(cookie.Value)
	if payload == nil || !slot.permit(payload) {
		return nil
	}

	return payload
}

// Clear expires this slot's cookie on the client. The other slot is untouched.
func (slot *Slot) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     slot.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   slot.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Manager bundles the two session slots with CSRF token issuance so HTTP
// handlers depend on a single value.
type Manager struct {
	User  *Slot
	Admin *Slot

	secret string
	secure bool
}

// NewManager wires both slots onto a shared codec and signing secret.
func NewManager(codec *sec.TokenCodec, secret string, secureCookies bool) *Manager {
	return &Manager{
		User:   NewUserSlot(codec, secureCookies),
		Admin:  NewAdminSlot(codec, secureCookies),
		secret: secret,
		secure: secureCookies,
	}
}

// IssueCSRFToken mints a fresh CSRF token, stores its HMAC digest in the
// csrf-token cookie, and returns the raw token for the response body.
//
// The raw token never touches a cookie: scripts send it back in the
// X-CSRF-Token header, and the guard recomputes the digest for comparison.
func (manager *Manager) IssueCSRFToken(writer http.ResponseWriter) (string, error) {
	token, err := sec.NewCSRFToken()
	if err != nil {
		return "", err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.CSRFCookieName,
		Value:    sec.CSRFDigest(token, manager.secret),
		Path:     "/",
		MaxAge:   int(constants.CSRFTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return token, nil
}
