package tabstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage stores values under "<prefix>:<key>" and publishes every write
// on "<prefix>:changed:<key>".
type RedisStorage struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStorage returns a RedisStorage. An empty prefix defaults to "goux".
func NewRedisStorage(redisClient redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "goux"
	}
	return &RedisStorage{
		redis:  redisClient,
		prefix: prefix,
	}
}

// Get returns the value under key. A missing key is not an error.
func (r *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.redis.Get(ctx, r.valueKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return value, true, nil
}

// Set overwrites key without expiry and publishes the new value.
func (r *RedisStorage) Set(ctx context.Context, key, value string) error {
	pipe := r.redis.TxPipeline()
	pipe.Set(ctx, r.valueKey(key), value, 0)
	pipe.Publish(ctx, r.channel(key), value)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Watch subscribes to writes of key and calls fn for each published value
// until ctx is done.
func (r *RedisStorage) Watch(ctx context.Context, key string, fn func(value string)) error {
	sub := r.redis.Subscribe(ctx, r.channel(key))
	defer sub.Close()

	// Wait for the subscription confirmation so no write published after
	// Watch starts listening is missed.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}

func (r *RedisStorage) valueKey(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisStorage) channel(key string) string {
	return r.prefix + ":changed:" + key
}
