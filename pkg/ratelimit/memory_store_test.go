package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotx/contactrelay/pkg/ratelimit"
)

func TestMemoryStore_Take(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates entry on first request", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore()
		e, ok, err := store.Take(ctx, "k", 5, time.Hour, now)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1, e.Count)
		assert.Equal(t, now, e.WindowStart)
	})

	t.Run("at the limit the count is unchanged", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore()
		for range 2 {
			_, _, err := store.Take(ctx, "k", 2, time.Hour, now)
			require.NoError(t, err)
		}

		e, ok, err := store.Take(ctx, "k", 2, time.Hour, now)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 2, e.Count)
	})

	t.Run("expired entries of other keys are purged", func(t *testing.T) {
		t.Parallel()

		store := ratelimit.NewMemoryStore()
		_, _, err := store.Take(ctx, "old-1", 5, time.Hour, now)
		require.NoError(t, err)
		_, _, err = store.Take(ctx, "old-2", 5, time.Hour, now.Add(time.Minute))
		require.NoError(t, err)
		require.Equal(t, 2, store.Len())

		_, _, err = store.Take(ctx, "fresh", 5, time.Hour, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, store.Len(), "old-1 is purged, old-2 is still live")

		_, _, err = store.Take(ctx, "fresh", 5, time.Hour, now.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
	})
}

func TestMemoryStore_PeekDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Now()
	store := ratelimit.NewMemoryStore()

	e, err := store.Peek(ctx, "missing", time.Hour, now)
	require.NoError(t, err)
	assert.Zero(t, e)

	_, _, err = store.Take(ctx, "k", 5, time.Hour, now)
	require.NoError(t, err)

	e, err = store.Peek(ctx, "k", time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Count)

	e, err = store.Peek(ctx, "k", time.Hour, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, e)

	require.NoError(t, store.Delete(ctx, "k"))
	assert.Equal(t, 0, store.Len())
}
