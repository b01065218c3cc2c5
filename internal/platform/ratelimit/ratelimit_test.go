// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move a MemoryStore through time deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(clock *fakeClock) *MemoryStore {
	store := NewMemoryStore()
	store.now = clock.Now
	return store
}

func TestMemoryStore_AllowsUpToMax(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(clock)

	const max = 5
	window := 5 * time.Minute

	for attempt := 1; attempt <= max; attempt++ {
		decision := store.Check(ctx, "login:203.0.113.7", window, max)
		require.True(t, decision.Allowed, "attempt %d should be allowed", attempt)
		assert.Equal(t, max-attempt, decision.Remaining)
	}

	// The sixth attempt inside the same window is rejected.
	decision := store.Check(ctx, "login:203.0.113.7", window, max)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)
	assert.Equal(t, clock.Now().Add(window), decision.ResetAt)
}

func TestMemoryStore_WindowResets(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(clock)

	window := 5 * time.Minute

	// Exhaust the window.
	for i := 0; i < 3; i++ {
		store.Check(ctx, "login:198.51.100.1", window, 3)
	}
	decision := store.Check(ctx, "login:198.51.100.1", window, 3)
	require.False(t, decision.Allowed)

	// One second past the deadline a fresh window opens.
	clock.Advance(window + time.Second)

	decision = store.Check(ctx, "login:198.51.100.1", window, 3)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 2, decision.Remaining)
	assert.Equal(t, clock.Now().Add(window), decision.ResetAt)
}

func TestMemoryStore_RejectionDoesNotExtendWindow(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(clock)

	window := time.Minute
	store.Check(ctx, "reset:user@kervan.shop", window, 1)
	firstReset := clock.Now().Add(window)

	// Hammering a full window must not push the deadline forward.
	clock.Advance(30 * time.Second)
	decision := store.Check(ctx, "reset:user@kervan.shop", window, 1)
	require.False(t, decision.Allowed)
	assert.Equal(t, firstReset, decision.ResetAt)
}

func TestMemoryStore_IdentifiersAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(newFakeClock())

	window := 5 * time.Minute

	for i := 0; i < 3; i++ {
		store.Check(ctx, Key("login", "203.0.113.7"), window, 3)
	}
	blocked := store.Check(ctx, Key("login", "203.0.113.7"), window, 3)
	require.False(t, blocked.Allowed)

	// A different IP, and the same IP under a different purpose, stay clean.
	otherIP := store.Check(ctx, Key("login", "203.0.113.8"), window, 3)
	assert.True(t, otherIP.Allowed)

	otherPurpose := store.Check(ctx, Key("register", "203.0.113.7"), window, 3)
	assert.True(t, otherPurpose.Allowed)
}

func TestMemoryStore_SweepEvictsExpiredOnly(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	store := newTestStore(clock)

	store.Check(ctx, "login:a", time.Minute, 5)
	store.Check(ctx, "login:b", time.Hour, 5)
	require.Equal(t, 2, store.size())

	clock.Advance(2 * time.Minute)
	store.sweep()

	assert.Equal(t, 1, store.size())

	// The surviving window still counts prior attempts.
	decision := store.Check(ctx, "login:b", time.Hour, 5)
	assert.Equal(t, 3, decision.Remaining)
}

func TestMemoryStore_ConcurrentChecksNeverExceedMax(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const max = 50
	const attempts = 200

	var wg sync.WaitGroup
	var allowed int64
	var mu sync.Mutex

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision := store.Check(ctx, "checkout:u1", time.Minute, max)
			if decision.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(max), allowed)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "login:203.0.113.7", Key("login", "203.0.113.7"))
	assert.Equal(t, "password_reset:a@b.c", Key("password_reset", "a@b.c"))
}
