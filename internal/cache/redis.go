package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store over a go-redis client. Tag indexes are
// Redis sets; entries are plain string values with TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client (the app-wide one owned by the
// server container, which already carries the New Relic hook).
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) AddTagMember(ctx context.Context, tagKey, key string) error {
	return s.client.SAdd(ctx, tagKey, key).Err()
}

func (s *RedisStore) TagMembers(ctx context.Context, tagKey string) ([]string, error) {
	return s.client.SMembers(ctx, tagKey).Result()
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
