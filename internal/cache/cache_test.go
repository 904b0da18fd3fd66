package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache() *Cache {
	logger := zerolog.Nop()
	return New(NewMemoryStore(), &logger)
}

func TestMemoryStoreMissThenGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(25 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestGetOrComputeMissThenHit(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	computations := 0
	compute := func() (any, error) {
		computations++
		return map[string]int{"n": 42}, nil
	}

	first, hit, err := c.GetOrCompute(ctx, "boards", "user_1", "list", time.Minute, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.JSONEq(t, `{"n":42}`, string(first))

	second, hit, err := c.GetOrCompute(ctx, "boards", "user_1", "list", time.Minute, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.JSONEq(t, `{"n":42}`, string(second))

	assert.Equal(t, 1, computations)
}

func TestGetOrComputeIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	computations := 0
	compute := func() (any, error) {
		computations++
		return "data", nil
	}

	_, _, err := c.GetOrCompute(ctx, "boards", "user_1", "list", time.Minute, compute)
	require.NoError(t, err)

	_, hit, err := c.GetOrCompute(ctx, "boards", "user_2", "list", time.Minute, compute)
	require.NoError(t, err)

	assert.False(t, hit)
	assert.Equal(t, 2, computations)
}

func TestGetOrComputeErrorIsNotStored(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	boom := errors.New("boom")
	_, _, err := c.GetOrCompute(ctx, "boards", "user_1", "list", time.Minute, func() (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, hit, err := c.GetOrCompute(ctx, "boards", "user_1", "list", time.Minute, func() (any, error) {
		return "fine", nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidateDropsWholeTagGroup(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	for _, key := range []string{"list", "detail:1", "detail:2"} {
		_, _, err := c.GetOrCompute(ctx, "boards", "user_1", key, time.Minute, func() (any, error) {
			return key, nil
		})
		require.NoError(t, err)
	}

	// Another user's entries must survive the invalidation.
	_, _, err := c.GetOrCompute(ctx, "boards", "user_2", "list", time.Minute, func() (any, error) {
		return "other", nil
	})
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, "boards", "user_1"))

	for _, key := range []string{"list", "detail:1", "detail:2"} {
		_, hit, err := c.GetOrCompute(ctx, "boards", "user_1", key, time.Minute, func() (any, error) {
			return "recomputed", nil
		})
		require.NoError(t, err)
		assert.False(t, hit, "entry %q should have been invalidated", key)
	}

	_, hit, err := c.GetOrCompute(ctx, "boards", "user_2", "list", time.Minute, func() (any, error) {
		return "other", nil
	})
	require.NoError(t, err)
	assert.True(t, hit)
}

// failingStore fails every read so the degrade-to-miss path is exercised.
type failingStore struct {
	*MemoryStore
}

func (s failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("store down")
}

func TestReadFailureDegradesToMiss(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	c := New(failingStore{NewMemoryStore()}, &logger)

	result, hit, err := c.GetOrCompute(ctx, "boards", "user_1", "list", time.Minute, func() (any, error) {
		return "computed", nil
	})

	require.NoError(t, err)
	assert.False(t, hit)
	assert.JSONEq(t, `"computed"`, string(result))
}
