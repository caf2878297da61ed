package roomlock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Требует запущенный Redis: REDIS_ADDR=localhost:6379 go test ./pkg/roomlock/...
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis_AcquireRelease(t *testing.T) {
	client := newTestRedis(t)
	locker := NewRedis(client, "roomlock-test:", time.Second, 5*time.Millisecond)
	key := RoomKey(time.Now().UnixNano())

	lock, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, key)
	require.ErrorIs(t, err, ErrLockTimeout)

	require.NoError(t, lock.Release(context.Background()))

	again, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)
	require.NoError(t, again.Release(context.Background()))
}

func TestRedis_ReleaseAfterExpiry(t *testing.T) {
	client := newTestRedis(t)
	locker := NewRedis(client, "roomlock-test:", 20*time.Millisecond, 5*time.Millisecond)
	key := RoomKey(time.Now().UnixNano())

	lock, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	err = lock.Release(context.Background())
	assert.ErrorIs(t, err, ErrLockLost)
}
