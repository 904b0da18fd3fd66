// Package cache implements the tag-addressable response cache used by
// cached procedure variants.
//
// Entries are keyed by (tag, user identity, entry key) so results are never
// shared across users. Member keys are indexed per tag in a set, which makes
// invalidating a whole tag group a single operation: look up the members,
// delete them, delete the index.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrMiss is returned by a Store when a key has no value.
var ErrMiss = errors.New("cache: miss")

// Store is the minimal key/value + tag-set surface the cache needs. Redis
// backs it in production; MemoryStore backs it in tests and when running
// without Redis.
type Store interface {
	// Get returns the value for key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given lifetime.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// AddTagMember records key as a member of the tag's index set.
	AddTagMember(ctx context.Context, tagKey, key string) error

	// TagMembers returns all member keys recorded under tagKey.
	TagMembers(ctx context.Context, tagKey string) ([]string, error)

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Cache is the tag-addressable get-or-compute cache.
type Cache struct {
	store  Store
	logger *zerolog.Logger
}

// New constructs a Cache over the given store.
func New(store Store, logger *zerolog.Logger) *Cache {
	return &Cache{
		store:  store,
		logger: logger,
	}
}

// entryKey builds the storage key for one cached result.
func entryKey(tag, userID, key string) string {
	return fmt.Sprintf("cache:%s:%s:%s", tag, userID, key)
}

// tagKey builds the storage key for a (tag, user) member index.
func tagKey(tag, userID string) string {
	return fmt.Sprintf("cachetag:%s:%s", tag, userID)
}

// GetOrCompute returns the cached result for (tag, userID, key), or runs
// compute exactly once, stores the marshaled result under the tag, and
// returns it. The boolean reports whether the value came from the cache.
//
// Store failures on the write path are logged and swallowed: a cache that
// cannot persist must not fail the request it was supposed to speed up.
// A compute failure is returned unchanged; nothing is stored.
func (c *Cache) GetOrCompute(ctx context.Context, tag, userID, key string, ttl time.Duration, compute func() (any, error)) (json.RawMessage, bool, error) {
	ek := entryKey(tag, userID, key)

	cached, err := c.store.Get(ctx, ek)
	switch {
	case err == nil:
		return json.RawMessage(cached), true, nil
	case errors.Is(err, ErrMiss):
		// fall through to compute
	default:
		// Read failure degrades to a miss.
		c.logger.Warn().Err(err).Str("cache_key", ek).Msg("cache read failed, computing")
	}

	result, err := compute()
	if err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, false, fmt.Errorf("marshaling cacheable result: %w", err)
	}

	if err := c.store.Set(ctx, ek, data, ttl); err != nil {
		c.logger.Warn().Err(err).Str("cache_key", ek).Msg("cache write failed")
		return json.RawMessage(data), false, nil
	}
	if err := c.store.AddTagMember(ctx, tagKey(tag, userID), ek); err != nil {
		c.logger.Warn().Err(err).Str("cache_tag", tag).Msg("cache tag index write failed")
	}

	return json.RawMessage(data), false, nil
}

// Invalidate removes every entry stored under (tag, userID) along with the
// tag index itself.
func (c *Cache) Invalidate(ctx context.Context, tag, userID string) error {
	tk := tagKey(tag, userID)

	members, err := c.store.TagMembers(ctx, tk)
	if err != nil {
		return fmt.Errorf("listing cache tag members: %w", err)
	}

	keys := append(members, tk)
	if err := c.store.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("deleting cache tag members: %w", err)
	}

	return nil
}
