package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wishboard/wishboard-backend/pkg/config"
	"github.com/wishboard/wishboard-backend/pkg/logger"
)

const keyNamespace = "wb"

var errURLRequired = errors.New("redis URL is required")

// Client wraps the redis connection helpers needed by the rate limiter.
type Client struct {
	raw *redis.Client
}

// New bootstraps a Redis client from the configured URL and verifies
// connectivity. Callers should skip construction entirely when the URL is
// empty; throttling is optional.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	trimmed := strings.TrimSpace(cfg.URL)
	if trimmed == "" {
		return nil, errURLRequired
	}

	opts, err := redis.ParseURL(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "redis client initialized")
	}
	return &Client{raw: raw}, nil
}

// IncrWithTTL increments a counter and arms its expiry on first use.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := c.raw.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if _, expErr := c.raw.Expire(ctx, key, ttl).Result(); expErr != nil {
			return count, expErr
		}
	}
	return count, nil
}

// RateLimitKey namespaces a rate-limit counter key.
func (c *Client) RateLimitKey(scope string) string {
	return fmt.Sprintf("%s:rate_limit:%s", keyNamespace, scope)
}

// Ping verifies connectivity for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.raw == nil {
		return errors.New("redis client not initialized")
	}
	return c.raw.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
