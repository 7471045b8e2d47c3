package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vinkit/internal/wmi"
)

func TestNewRedis(t *testing.T) {
	next := wmi.ResolverFunc(func(context.Context, string, string) (string, bool, error) {
		return "", false, nil
	})
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	_, err := NewRedis(nil, next, time.Minute)
	assert.ErrorContains(t, err, "redis client is required")

	_, err = NewRedis(client, nil, time.Minute)
	assert.ErrorContains(t, err, "next resolver is required")

	_, err = NewRedis(client, next, 0)
	assert.ErrorContains(t, err, "cache TTL must be positive")
}

func TestRedisUnavailableFallsThrough(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	calls := 0
	next := wmi.ResolverFunc(func(_ context.Context, _, key string) (string, bool, error) {
		calls++
		return "Tesla", true, nil
	})

	c, err := NewRedis(client, next, time.Minute,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	value, ok, err := c.Resolve(context.Background(), "en", "VIN_MANUFACTURER_5YJ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Tesla", value)
	assert.Equal(t, 1, calls)
}
