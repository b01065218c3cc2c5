// Copyright (c) 2026 Kervan Commerce. All rights reserved.
// Author: eng@kervanlab.io

/*
Package ratelimit implements fixed-window request counting keyed by an
arbitrary string identifier (e.g. "login:203.0.113.7").

Windows are discrete and non-overlapping: the first request for a key opens a
window, every request inside it increments the counter, and the window resets
atomically once its deadline passes. Expired records are treated as fresh on
their next lookup, so the periodic sweep is purely a memory bound.

The store is an explicit, injectable dependency rather than a module-level
singleton, which keeps tests isolated and allows swapping the in-process map
for a shared Redis window without API changes.
*/
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the structured outcome of a rate-limit check.
//
// Checks never fail: callers always receive a Decision and map a denial to
// HTTP 429 themselves.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the number of further requests permitted in this window.
	Remaining int
	// ResetAt is the instant the current window expires.
	ResetAt time.Time
}

// Store counts requests per identifier within fixed windows.
type Store interface {
	// Check records one request attempt for the identifier and returns the
	// window decision. A rejected attempt does not mutate the counter.
	Check(ctx context.Context, identifier string, window time.Duration, max int) Decision
}

// Key composes a rate-limit identifier from a purpose and a subject.
//
// Subjects are chosen per protected action: client IP for login/registration
// abuse, account email for password resets (bounding attempts per account
// regardless of source IP).
func Key(purpose, subject string) string {
	return purpose + ":" + subject
}

// # In-Memory Store

// record tracks one identifier's current window.
type record struct {
	count   int
	resetAt time.Time
}

// MemoryStore is a process-wide fixed-window counter map.
//
// # Concurrency
//
// All mutations happen under a single mutex, so concurrent increments for the
// same key are never lost. Counters are not shared across processes;
// multi-instance deployments each maintain independent windows (distributed
// rate limiting is an explicit non-goal — see [RedisStore] for best-effort
// sharing).
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*record

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory fixed-window store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Check implements [Store].
//
// # Window Semantics
//
//   - No record, or the record's window has elapsed: a fresh window opens
//     with count = 1 and the request is allowed.
//   - count >= max inside a live window: the request is rejected and the
//     record is left untouched.
//   - Otherwise the counter increments and the request is allowed.
func (store *MemoryStore) Check(_ context.Context, identifier string, window time.Duration, max int) Decision {
	currentTime := store.now()

	store.mu.Lock()
	defer store.mu.Unlock()

	existing, found := store.records[identifier]

	// Fresh key or expired window: open a new window.
	if !found || !currentTime.Before(existing.resetAt) {
		fresh := &record{count: 1, resetAt: currentTime.Add(window)}
		store.records[identifier] = fresh
		return Decision{Allowed: true, Remaining: max - 1, ResetAt: fresh.resetAt}
	}

	// Exhausted window: reject without mutating the counter.
	if existing.count >= max {
		return Decision{Allowed: false, Remaining: 0, ResetAt: existing.resetAt}
	}

	existing.count++
	return Decision{Allowed: true, Remaining: max - existing.count, ResetAt: existing.resetAt}
}

// StartSweeper launches a background goroutine that periodically evicts
// expired records to bound memory growth. It stops when ctx is cancelled.
//
// The sweep is advisory housekeeping, not correctness-critical: Check treats
// expired records as fresh regardless of sweep timing.
func (store *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				store.sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// sweep removes all records whose window has already elapsed.
func (store *MemoryStore) sweep() {
	currentTime := store.now()

	store.mu.Lock()
	defer store.mu.Unlock()

	for identifier, existing := range store.records {
		if !currentTime.Before(existing.resetAt) {
			delete(store.records, identifier)
		}
	}
}

// size returns the number of tracked records. Test helper.
func (store *MemoryStore) size() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.records)
}
