// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kervanlab/kervan/internal/platform/ctxutil"
	"github.com/kervanlab/kervan/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Session verifies that the user session payload can be stored in context.
*/
func TestContext_Session(t *testing.T) {
	ctx := context.Background()
	payload := &sec.SessionPayload{
		UserID: "user-123",
		Email:  "ayse@example.com",
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetSession(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithSession(ctx, payload)
	retrieved := ctxutil.GetSession(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Equal(t, "ayse@example.com", retrieved.Email)
}

/*
TestContext_SessionSlotsAreIndependent verifies that the user and admin
slots never shadow each other.
*/
func TestContext_SessionSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	user := &sec.SessionPayload{UserID: "user-123"}
	admin := &sec.SessionPayload{UserID: "admin-456", IsAdmin: true}

	// Only the user slot is populated.
	ctx = ctxutil.WithSession(ctx, user)
	assert.NotNil(t, ctxutil.GetSession(ctx))
	assert.Nil(t, ctxutil.GetAdminSession(ctx))

	// Both populated: each getter sees its own payload.
	ctx = ctxutil.WithAdminSession(ctx, admin)
	assert.Equal(t, "user-123", ctxutil.GetSession(ctx).UserID)
	assert.Equal(t, "admin-456", ctxutil.GetAdminSession(ctx).UserID)
	assert.True(t, ctxutil.GetAdminSession(ctx).IsAdmin)
}
