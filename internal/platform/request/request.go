// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kervanlab/kervan/internal/platform/apperr"
	"github.com/kervanlab/kervan/internal/platform/ctxutil"
	"github.com/kervanlab/kervan/internal/platform/sec"
	"github.com/kervanlab/kervan/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter (UUID/Slug) from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Session extracts the authenticated user session payload from the request context.

Returns nil if the request is not authenticated.
*/
func Session(request *http.Request) *sec.SessionPayload {
	return ctxutil.GetSession(request.Context())
}

/*
RequiredSession ensures the request carries a valid user session and returns it.

Returns:
  - *sec.SessionPayload: The authenticated session payload
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredSession(request *http.Request) (*sec.SessionPayload, error) {
	payload := ctxutil.GetSession(request.Context())
	if payload == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return payload, nil
}

/*
RequiredUserID returns the user ID of the currently logged-in customer.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	payload, err := RequiredSession(request)
	if err != nil {
		return "", err
	}
	return payload.UserID, nil
}

/*
RequiredAdminSession ensures the request carries a valid admin session.

The admin slot is resolved independently of the user slot; a browser logged
in as a regular customer still receives Unauthorized here.
*/
func RequiredAdminSession(request *http.Request) (*sec.SessionPayload, error) {
	payload := ctxutil.GetAdminSession(request.Context())
	if payload == nil {
		return nil, apperr.Unauthorized("Admin authentication required")
	}
	return payload, nil
}
