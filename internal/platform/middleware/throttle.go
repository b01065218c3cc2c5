// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/constants"
	"github.com/kervanlab/kervan/internal/platform/ctxutil"
	"github.com/kervanlab/kervan/internal/platform/ratelimit"
	"github.com/kervanlab/kervan/internal/platform/respond"
)

// SubjectFunc derives the rate-limit subject for a request: who is being
// counted. SubjectIP is the default; purposes bound per account derive the
// subject from the session or request body inside their handlers instead.
type SubjectFunc func(request *http.Request) string

// SubjectIP counts attempts per client IP.
func SubjectIP(request *http.Request) string {
	return RealIP(request)
}

// SubjectUser counts attempts per authenticated user, falling back to the
// client IP when the request carries no session. Mount after RequireAuth so
// the fallback never triggers in practice.
func SubjectUser(request *http.Request) string {
	if payload := ctxutil.GetSession(request.Context()); payload != nil {
		return payload.UserID
	}
	return RealIP(request)
}

// Throttle enforces a fixed-window limit on one route for one purpose.
//
// # Flow
//  1. Derive the subject and compose the window identifier
//     (e.g. "login:203.0.113.7").
//  2. Ask the store for a decision. Checks never fail; at worst a degraded
//     store fails open.
//  3. Advertise the window state via X-RateLimit-Limit, X-RateLimit-Remaining
//     and X-RateLimit-Reset on every response, allowed or not.
//  4. On rejection, answer 429 RATE_LIMITED with a Retry-After header holding
//     the whole seconds until the window resets.
//
// # Usage
//
// Mounted per route group, before the handler:
//
//	r.With(middleware.Throttle(store, constants.PurposeLogin,
//		constants.LoginWindow, constants.LoginMaxAttempts,
//		middleware.SubjectIP)).Post("/login", handler.login)
func Throttle(store ratelimit.Store, purpose string, window time.Duration, max int, subject SubjectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			identifier := ratelimit.Key(purpose, subject(request))
			decision := store.Check(request.Context(), identifier, window, max)

			header := writer.Header()
			header.Set(constants.HeaderRateLimitLimit, strconv.Itoa(max))
			header.Set(constants.HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
			header.Set(constants.HeaderRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				retryAfter := int(time.Until(decision.ResetAt).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				header.Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
				respond.Error(writer, request, apperr.RateLimited(retryAfter))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
