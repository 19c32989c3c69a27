// Package kv provides the key-value store the planner persists through.
// The contract is deliberately narrow: a key either holds a text payload
// or is absent, and writes either succeed or fail as a whole.
package kv

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Store is the port the task store persists through.
type Store interface {
	// Get retrieves the payload for key. found is false when the key is
	// absent; err is reserved for transport failures.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores the payload under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Stats tracks store operation counters.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Sets    uint64 `json:"sets"`
	Deletes uint64 `json:"deletes"`
	Errors  uint64 `json:"errors"`
}

// RedisStore implements Store on top of a Redis client. All keys are
// namespaced under a configurable prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
	stats  *Stats
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		stats:  &Stats{},
	}
}

// Get retrieves a payload from Redis.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&s.stats.Misses, 1)
			return "", false, nil
		}
		atomic.AddUint64(&s.stats.Errors, 1)
		return "", false, fmt.Errorf("kv get error: %w", err)
	}

	atomic.AddUint64(&s.stats.Hits, 1)
	return value, true, nil
}

// Set stores a payload in Redis without expiry; planner collections live
// until explicitly replaced or deleted.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		atomic.AddUint64(&s.stats.Errors, 1)
		return fmt.Errorf("kv set error: %w", err)
	}

	atomic.AddUint64(&s.stats.Sets, 1)
	return nil
}

// Delete removes a key from Redis.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		atomic.AddUint64(&s.stats.Errors, 1)
		return fmt.Errorf("kv delete error: %w", err)
	}

	atomic.AddUint64(&s.stats.Deletes, 1)
	return nil
}

// GetStats returns a snapshot of the operation counters.
func (s *RedisStore) GetStats() Stats {
	return Stats{
		Hits:    atomic.LoadUint64(&s.stats.Hits),
		Misses:  atomic.LoadUint64(&s.stats.Misses),
		Sets:    atomic.LoadUint64(&s.stats.Sets),
		Deletes: atomic.LoadUint64(&s.stats.Deletes),
		Errors:  atomic.LoadUint64(&s.stats.Errors),
	}
}

// Ping checks if the Redis connection is healthy.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
