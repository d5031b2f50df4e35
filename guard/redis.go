package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrGuardUnavailable indicates the Redis backend could not be reached.
	ErrGuardUnavailable = errors.New("submission guard backend unavailable")
)

// RedisGuard suppresses duplicate submits across processes. A key stays
// claimed for the cooldown window after the first Acquire.
type RedisGuard struct {
	redis    redis.UniversalClient
	prefix   string
	cooldown time.Duration
}

// NewRedisGuard returns a guard storing claims under prefix. A non-positive
// cooldown falls back to DefaultCooldown.
func NewRedisGuard(redisClient redis.UniversalClient, prefix string, cooldown time.Duration) *RedisGuard {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if prefix == "" {
		prefix = "gsub"
	}
	return &RedisGuard{
		redis:    redisClient,
		prefix:   prefix,
		cooldown: cooldown,
	}
}

// Cooldown returns the claim lifetime.
func (g *RedisGuard) Cooldown() time.Duration {
	if g == nil {
		return DefaultCooldown
	}
	return g.cooldown
}

// Acquire claims key. The first claim inside a window is Allowed, later ones
// are Suppressed until the claim expires or is released.
func (g *RedisGuard) Acquire(ctx context.Context, key string) (Decision, error) {
	if g == nil || g.redis == nil {
		return Allowed, nil
	}

	ok, err := g.redis.SetNX(ctx, g.key(key), "1", g.cooldown).Result()
	if err != nil {
		return Suppressed, fmt.Errorf("%w: %v", ErrGuardUnavailable, err)
	}
	if !ok {
		return Suppressed, nil
	}
	return Allowed, nil
}

// Release drops the claim on key so the next submit is allowed.
func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if g == nil || g.redis == nil {
		return nil
	}
	if err := g.redis.Del(ctx, g.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrGuardUnavailable, err)
	}
	return nil
}

// Remaining returns how long key stays claimed. Zero means the key is free.
func (g *RedisGuard) Remaining(ctx context.Context, key string) (time.Duration, error) {
	if g == nil || g.redis == nil {
		return 0, nil
	}
	ttl, err := g.redis.PTTL(ctx, g.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrGuardUnavailable, err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (g *RedisGuard) key(key string) string {
	return g.prefix + ":" + key
}
