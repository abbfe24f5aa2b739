package ratelimit

import (
	"context"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is the time when the current window expires.
	ResetAt time.Time

	// CheckedAt is the limiter clock reading the result was computed at.
	// Zero means the wall clock is used.
	CheckedAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	now := r.CheckedAt
	if now.IsZero() {
		now = time.Now()
	}
	return max(r.ResetAt.Sub(now), 0)
}

// Entry is the per-key counter of a fixed window.
type Entry struct {
	Count       int
	WindowStart time.Time
}

// Expired reports whether the window that started at WindowStart is over at now.
func (e Entry) Expired(now time.Time, window time.Duration) bool {
	return !now.Before(e.WindowStart.Add(window))
}

// Limiter defines the interface consumed by request handlers.
type Limiter interface {
	// Check admits or denies one request for the given key.
	// A denied request does not change the stored counter.
	Check(ctx context.Context, key string) (*Result, error)

	// Status returns the current state for the given key without counting a request.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset forgets the given key.
	Reset(ctx context.Context, key string) error
}

// Store defines the interface for rate limit storage backends.
type Store interface {
	// Take purges expired windows, then increments the counter of key when it
	// is below limit. Returns the entry after the operation and whether the
	// request was admitted. Must be atomic per key.
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Entry, bool, error)

	// Peek returns the live entry for key, or a zero Entry if there is none.
	Peek(ctx context.Context, key string, window time.Duration, now time.Time) (Entry, error)

	// Delete removes the given key from the store.
	Delete(ctx context.Context, key string) error
}
