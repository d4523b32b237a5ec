package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserCache stores serialized users by id. A miss is reported as (nil, nil).
type UserCache interface {
	GetByID(ctx context.Context, id int64) ([]byte, error)
	Set(ctx context.Context, id int64, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, id int64) error
}

type userCache struct {
	client *RedisClient
	prefix string
}

func NewUserCache(redisClient *RedisClient) UserCache {
	return &userCache{
		client: redisClient,
		prefix: "user:",
	}
}

func (c *userCache) key(id int64) string {
	return fmt.Sprintf("%s%d", c.prefix, id)
}

func (c *userCache) GetByID(ctx context.Context, id int64) ([]byte, error) {
	data, err := c.client.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}
	return data, nil
}

func (c *userCache) Set(ctx context.Context, id int64, data []byte, ttl time.Duration) error {
	return c.client.client.Set(ctx, c.key(id), data, ttl).Err()
}

func (c *userCache) Delete(ctx context.Context, id int64) error {
	return c.client.client.Del(ctx, c.key(id)).Err()
}

// NoopUserCache always misses. Used when redis is disabled.
type NoopUserCache struct{}

func (NoopUserCache) GetByID(context.Context, int64) ([]byte, error)          { return nil, nil }
func (NoopUserCache) Set(context.Context, int64, []byte, time.Duration) error { return nil }
func (NoopUserCache) Delete(context.Context, int64) error                     { return nil }
