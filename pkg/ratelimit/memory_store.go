package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps fixed window counters in a process-local map.
// Expired entries are purged on every Take, there is no background sweeper.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
	}
}

// Take implements Store.
func (s *MemoryStore) Take(_ context.Context, key string, limit int, window time.Duration, now time.Time) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if e.Expired(now, window) {
			delete(s.entries, k)
		}
	}

	e, ok := s.entries[key]
	if !ok {
		e = Entry{WindowStart: now}
	}
	if e.Count >= limit {
		s.entries[key] = e
		return e, false, nil
	}

	e.Count++
	s.entries[key] = e
	return e, true, nil
}

// Peek implements Store.
func (s *MemoryStore) Peek(_ context.Context, key string, window time.Duration, now time.Time) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.Expired(now, window) {
		return Entry{}, nil
	}
	return e, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Len returns the number of tracked keys, including ones not purged yet.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
