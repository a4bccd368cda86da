package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client, ttl, zap.NewNop()), mr
}

func TestRedisLockerExcludes(t *testing.T) {
	l, mr := newRedisLocker(t, 10*time.Second)

	unlock, err := l.Lock(context.Background(), "technician:1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"technician:1"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "technician:1")
	assert.ErrorIs(t, err, ErrNotAcquired)

	unlock()
	unlock()
	assert.False(t, mr.Exists(keyPrefix+"technician:1"))

	again, err := l.Lock(context.Background(), "technician:1")
	require.NoError(t, err)
	again()
}

func TestRedisLockerReleaseChecksToken(t *testing.T) {
	l, mr := newRedisLocker(t, 10*time.Second)

	unlock, err := l.Lock(context.Background(), "field:Maria")
	require.NoError(t, err)

	// o lock expirou e outra instância o pegou
	require.NoError(t, mr.Set(keyPrefix+"field:Maria", "other-token"))
	unlock()

	got, err := mr.Get(keyPrefix + "field:Maria")
	require.NoError(t, err)
	assert.Equal(t, "other-token", got)
}

func TestRedisLockerPartialFailureReleasesHeldKeys(t *testing.T) {
	l, mr := newRedisLocker(t, 10*time.Second)
	require.NoError(t, mr.Set(keyPrefix+"technician:2", "other-token"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := l.Lock(ctx, "technician:2", "technician:1")
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.False(t, mr.Exists(keyPrefix+"technician:1"))
}

func TestRedisLockerRenewsWhileHeld(t *testing.T) {
	ttl := 300 * time.Millisecond
	l, mr := newRedisLocker(t, ttl)

	unlock, err := l.Lock(context.Background(), "technician:1")
	require.NoError(t, err)
	defer unlock()

	key := keyPrefix + "technician:1"
	mr.FastForward(250 * time.Millisecond)
	require.True(t, mr.Exists(key))

	assert.Eventually(t, func() bool {
		return mr.TTL(key) > 200*time.Millisecond
	}, 2*time.Second, 20*time.Millisecond)
}
