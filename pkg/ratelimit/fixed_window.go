package ratelimit

import (
	"context"
	"errors"
	"time"
)

// FixedWindow admits at most limit requests per key inside a window that
// starts with the first request of that key.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// Option configures a FixedWindow.
type Option func(*FixedWindow)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(fw *FixedWindow) {
		if now != nil {
			fw.now = now
		}
	}
}

// NewFixedWindow creates a fixed window limiter backed by store.
func NewFixedWindow(store Store, limit int, window time.Duration, opts ...Option) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	fw := &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(fw)
	}

	return fw, nil
}

// Check counts one request for key unless the key already reached the limit.
func (fw *FixedWindow) Check(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := fw.now()
	entry, allowed, err := fw.store.Take(ctx, key, fw.limit, fw.window, now)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	return fw.result(entry, allowed, now), nil
}

// Status reports the state of key without counting a request.
func (fw *FixedWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := fw.now()
	entry, err := fw.store.Peek(ctx, key, fw.window, now)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	if entry.WindowStart.IsZero() {
		entry.WindowStart = now
	}

	return fw.result(entry, entry.Count < fw.limit, now), nil
}

// Reset forgets key so its next request opens a new window.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	if err := fw.store.Delete(ctx, key); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// Limit returns the configured ceiling.
func (fw *FixedWindow) Limit() int { return fw.limit }

// Window returns the configured window length.
func (fw *FixedWindow) Window() time.Duration { return fw.window }

func (fw *FixedWindow) result(entry Entry, allowed bool, now time.Time) *Result {
	return &Result{
		Allowed:   allowed,
		Limit:     fw.limit,
		Remaining: max(fw.limit-entry.Count, 0),
		ResetAt:   entry.WindowStart.Add(fw.window),
		CheckedAt: now,
	}
}
