package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// redisOpTimeout bounds each store call so a dead server degrades reads to
// "no saved position" instead of freezing the UI loop.
const redisOpTimeout = 3 * time.Second

// Redis is a KV backed by a Redis server, for keeping reading positions in
// sync across machines. Keys live under their own namespace.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to the server described by a redis:// URL and verifies
// it answers before the store is handed out.
func NewRedis(redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{client: c, prefix: "rbook:"}, nil
}

func (r *Redis) Set(key string, value int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, int64(value), 0).Err()
}

func (r *Redis) Get(key string) (int32, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return int32(v), true, nil
}

func (r *Redis) Close() error { return r.client.Close() }
