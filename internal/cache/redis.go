// Package cache wraps Redis for the response cache and login rate limiting.
// Every method is safe on a nil *Store, which behaves as an always-miss cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

// New returns nil when rdb is nil so that callers can keep a disabled cache.
func New(rdb *redis.Client) *Store {
	if rdb == nil {
		return nil
	}
	return &Store{rdb: rdb}
}

func (s *Store) Enabled() bool {
	return s != nil && s.rdb != nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.rdb.Close()
}

// --- Generic JSON cache ---

// GetJSON decodes the cached value of key into dest. hit is false on a miss
// or when the cache is disabled.
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

// DeletePrefix removes every key starting with prefix.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) error {
	if !s.Enabled() {
		return nil
	}
	iter := s.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// --- Counters ---

// Increment bumps the counter of key and (re)arms its expiry.
func (s *Store) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Counter returns the current value of key and its remaining lifetime.
func (s *Store) Counter(ctx context.Context, key string) (int64, time.Duration, error) {
	if !s.Enabled() {
		return 0, 0, nil
	}
	val, err := s.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	ttl, err := s.rdb.TTL(ctx, key).Result()
	if err != nil {
		return val, 0, err
	}
	return val, ttl, nil
}
