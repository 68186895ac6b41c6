package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/vecindapp/auth-service/repository"
)

type loginThrottle struct {
	client      *redislib.Client
	prefix      string
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a Redis-backed failed-login counter. Each failure
// bumps a per-RUT counter whose TTL is the lockout window; once the counter
// reaches maxAttempts, logins for that RUT are refused until the key expires.
func NewLoginThrottle(client *redislib.Client, maxAttempts int, window time.Duration) repository.LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &loginThrottle{
		client:      client,
		prefix:      "login_attempts:",
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (t *loginThrottle) Locked(ctx context.Context, rut string) (bool, error) {
	count, err := t.client.Get(ctx, t.key(rut)).Int64()
	if err != nil {
		if err == redislib.Nil {
			return false, nil
		}
		return false, err
	}
	return count >= t.maxAttempts, nil
}

func (t *loginThrottle) RecordFailure(ctx context.Context, rut string) (int64, error) {
	key := t.key(rut)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// First failure opens the window.
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (t *loginThrottle) Reset(ctx context.Context, rut string) error {
	return t.client.Del(ctx, t.key(rut)).Err()
}

func (t *loginThrottle) key(rut string) string {
	return fmt.Sprintf("%s%s", t.prefix, rut)
}
