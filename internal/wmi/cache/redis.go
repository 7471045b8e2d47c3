package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"vinkit/internal/wmi"
)

const (
	redisKeyPrefix = "vinkit:wmi:"
	// missMarker stores a negative result; catalog values never contain NUL.
	missMarker = "\x00miss"
)

// Redis caches resolver results in Redis. Redis failures are logged and
// the lookup falls through to the next resolver.
type Redis struct {
	client  redis.UniversalClient
	next    wmi.Resolver
	ttl     time.Duration
	metrics *Metrics
	logger  *slog.Logger
}

// RedisOption configures a Redis cache.
type RedisOption func(*Redis)

// WithRedisMetrics records hits and misses.
func WithRedisMetrics(m *Metrics) RedisOption {
	return func(c *Redis) {
		c.metrics = m
	}
}

// WithLogger sets the logger used for degraded-mode warnings.
func WithLogger(logger *slog.Logger) RedisOption {
	return func(c *Redis) {
		c.logger = logger
	}
}

// NewRedis wraps next with a Redis-backed cache.
func NewRedis(client redis.UniversalClient, next wmi.Resolver, ttl time.Duration, opts ...RedisOption) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if next == nil {
		return nil, fmt.Errorf("next resolver is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache TTL must be positive")
	}
	c := &Redis{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Resolve implements wmi.Resolver.
func (c *Redis) Resolve(ctx context.Context, locale, key string) (string, bool, error) {
	start := time.Now()
	redisKey := redisKeyPrefix + locale + ":" + key

	cached, err := c.client.Get(ctx, redisKey).Result()
	switch {
	case err == nil:
		c.metrics.recordHit("redis", start)
		if cached == missMarker {
			return "", false, nil
		}
		return cached, true, nil
	case errors.Is(err, redis.Nil):
		c.metrics.recordMiss("redis", start)
	default:
		c.metrics.recordMiss("redis", start)
		c.logger.WarnContext(ctx, "wmi redis cache unavailable",
			"key", redisKey,
			"error", err,
		)
		return c.next.Resolve(ctx, locale, key)
	}

	value, found, err := c.next.Resolve(ctx, locale, key)
	if err != nil {
		return "", false, err
	}

	stored := value
	if !found {
		stored = missMarker
	}
	if err := c.client.Set(ctx, redisKey, stored, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "wmi redis cache write failed",
			"key", redisKey,
			"error", err,
		)
	}
	return value, found, nil
}
