package cache

import (
	"context"
	"strings"
	"time"
)

const (
	MaxLoginFailures = 5
	LoginLockout     = 15 * time.Minute
)

func loginKey(username string) string {
	return "login_failures:" + strings.ToLower(username)
}

// LoginLocked reports whether username has too many recent failures, and
// for how long it stays locked.
func (s *Store) LoginLocked(ctx context.Context, username string) (bool, time.Duration, error) {
	n, ttl, err := s.Counter(ctx, loginKey(username))
	if err != nil {
		return false, 0, err
	}
	return n >= MaxLoginFailures, ttl, nil
}

// RecordLoginFailure counts a failed attempt; the lockout window restarts at
// every failure.
func (s *Store) RecordLoginFailure(ctx context.Context, username string) (int64, error) {
	return s.Increment(ctx, loginKey(username), LoginLockout)
}

func (s *Store) ClearLoginFailures(ctx context.Context, username string) error {
	return s.Delete(ctx, loginKey(username))
}
