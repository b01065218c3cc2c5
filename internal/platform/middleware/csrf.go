// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package middleware

import (
	"net/http"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/sec"
)

// RequireCSRF verifies the double-submit CSRF token on mutating requests.
//
// # Flow
//  1. Safe verbs (GET, HEAD, OPTIONS) pass through untouched.
//  2. The token must arrive in the X-CSRF-Token header. The body is never
//     read, so the guard works for any content type and leaves the request
//     stream intact for the handler. A missing header is 403
//     CSRF_TOKEN_MISSING.
//  3. The csrf-token cookie must hold the HMAC digest of that token.
//     A missing cookie or a digest mismatch is 403 CSRF_TOKEN_INVALID.
//
// Comparison is constant-time. The two failure codes are deliberate: the
// storefront treats MISSING as "fetch a token first" and INVALID as "the
// token went stale, refresh it".
func RequireCSRF(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			switch request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(writer, request)
				return
			}

			token := request.Header.Get(constants.HeaderCSRFToken)
			if token == "" {
				respond.Error(writer, request, apperr.CSRFMissing())
				return
			}

			cookie, err := request.Cookie(constants.CSRFCookieName)
			if err != nil {
				respond.Error(writer, request, apperr.CSRFInvalid())
				return
			}

			if !sec.CSRFTokenMatches(token, cookie.Value, secret) {
				respond.Error(writer, request, apperr.CSRFInvalid())
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
