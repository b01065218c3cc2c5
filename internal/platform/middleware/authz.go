// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package middleware

import (
	"net/http"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/ctxutil"
	"github.com/kervanlab/kervan/internal/platform/respond"
	"github.com/kervanlab/kervan/internal/platform/session"
)

// Authenticate decodes both session cookie slots into the request context.
//
// # Flow
//  1. Read and verify the "session" cookie; on success, attach the shopper
//     payload to the context.
//  2. Read and verify the "admin_session" cookie independently; on success,
//     attach the admin payload under its own key.
//  3. Either or both may be absent; the request always proceeds. Anonymous
//     is a valid state, and enforcement belongs to [RequireAuth] and
//     [RequireAdmin] on the routes that need it.
//
// Invalid or expired tokens are indistinguishable from absent ones here:
// the slot collapses every failure mode to nil.
func Authenticate(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			if payload := manager.User.Get(request); payload != nil {
				ctx = ctxutil.WithSession(ctx, payload)
			}
			if payload := manager.Admin.Get(request); payload != nil {
				ctx = ctxutil.WithAdminSession(ctx, payload)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests without a valid shopper session.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetSession(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests without a valid admin session.
//
// The check reads only the admin slot. A logged-in shopper without an
// admin_session cookie gets the same 401 as a fully anonymous request, so
// the response does not reveal whether an admin surface exists for them.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAdminSession(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
