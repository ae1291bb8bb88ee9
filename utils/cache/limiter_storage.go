package cache

import (
	"context"
	"errors"
	"time"
)

// operationTimeout bounds every Redis call made on behalf of a request
const operationTimeout = 2 * time.Second

// LimiterStorage adapts RedisCache to fiber's Storage interface so rate-limit
// counters are shared between API instances. Keys are namespaced by prefix.
type LimiterStorage struct {
	cache  *RedisCache
	prefix string
}

// NewLimiterStorage creates a limiter storage on top of cache
func NewLimiterStorage(cache *RedisCache, prefix string) *LimiterStorage {
	return &LimiterStorage{cache: cache, prefix: prefix}
}

// Get returns nil, nil for a missing key as fiber expects
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	val, err := s.cache.Get(ctx, s.prefix+key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

// Set stores val under key; a zero exp keeps it forever
func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	return s.cache.Set(ctx, s.prefix+key, val, exp)
}

// Delete removes key
func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	return s.cache.Delete(ctx, s.prefix+key)
}

// Reset removes every key under the prefix and nothing else
func (s *LimiterStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	keys, err := s.cache.Keys(ctx, s.prefix+"*")
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, keys...)
}

// Close is a no-op; the Redis client belongs to whoever created the cache
func (s *LimiterStorage) Close() error {
	return nil
}
