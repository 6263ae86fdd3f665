package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/autopilotstudio/mailroom/pkg/redis"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)

	client, err := redis.Open(context.Background(), redis.Config{
		URL: "redis://" + mr.Addr(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
}

func TestOpen_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Open(context.Background(), redis.Config{})
	require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Open(context.Background(), redis.Config{URL: "localhost:6379"})
	require.ErrorIs(t, err, redis.ErrFailedToParseURL)
}

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := redis.Open(ctx, redis.Config{
		URL:           "redis://127.0.0.1:1",
		RetryAttempts: 1,
		RetryInterval: 10 * time.Millisecond,
	})
	require.ErrorIs(t, err, redis.ErrConnectionFailed)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client, err := redis.Open(context.Background(), redis.Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	check := redis.Healthcheck(client)
	require.NoError(t, check(context.Background()))

	require.Error(t, redis.Healthcheck(nil)(context.Background()))
}
