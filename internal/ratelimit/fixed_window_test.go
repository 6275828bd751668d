package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, mr *miniredis.Miniredis, limit int) *FixedWindow {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l, err := NewFixedWindow(client, "test:ratelimit", limit, time.Minute)
	require.NoError(t, err)

	return l
}

func TestFixedWindow_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 2)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "user@nextmail.com"))
	assert.True(t, l.Allow(ctx, "USER@nextmail.com "))
	assert.False(t, l.Allow(ctx, "user@nextmail.com"))

	assert.True(t, l.Allow(ctx, "other@nextmail.com"), "keys are counted separately")
}

func TestFixedWindow_NewWindowResets(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 1)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return start }

	assert.True(t, l.Allow(ctx, "k"))
	assert.False(t, l.Allow(ctx, "k"))

	l.now = func() time.Time { return start.Add(time.Minute) }

	assert.True(t, l.Allow(ctx, "k"))
}

func TestFixedWindow_SetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 3)

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return start }

	l.Allow(context.Background(), "k")

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))
}

func TestFixedWindow_FailsClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	l := newLimiter(t, mr, 5)

	mr.Close()

	assert.False(t, l.Allow(context.Background(), "k"))
}

func TestNewFixedWindow_Validation(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	_, err := NewFixedWindow(nil, "", 1, time.Second)
	assert.Error(t, err)

	_, err = NewFixedWindow(client, "", 0, time.Second)
	assert.Error(t, err)

	_, err = NewFixedWindow(client, "", 1, 0)
	assert.Error(t, err)

	l, err := NewFixedWindow(client, " ", 1, time.Second)
	require.NoError(t, err)
	assert.Equal(t, defaultPrefix, l.prefix)
}

func TestUnlimited(t *testing.T) {
	var l Unlimited

	for range 100 {
		assert.True(t, l.Allow(context.Background(), "k"))
	}
}
