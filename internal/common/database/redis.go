package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"talent-match-workers/internal/common/config"
)

// RedisClient wraps the client backing the profile and result caches.
type RedisClient struct {
	Client redis.UniversalClient
}

// NewRedis builds the client lazily; connectivity is checked with Ping.
func NewRedis(cfg config.RedisConfig) *RedisClient {
	io := config.GetDuration(cfg.IOTimeout)
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  config.GetDuration(cfg.DialTimeout),
		ReadTimeout:  io,
		WriteTimeout: io,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})
	return &RedisClient{Client: rdb}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
