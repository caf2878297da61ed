package roomlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript удаляет ключ, только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis распределённые блокировки через SET NX с TTL
// TTL ограничивает время жизни блокировки, если держатель упал
type Redis struct {
	client     redis.UniversalClient
	prefix     string
	ttl        time.Duration
	retryEvery time.Duration
}

// NewRedis создает Locker поверх Redis
func NewRedis(client redis.UniversalClient, prefix string, ttl, retryEvery time.Duration) *Redis {
	return &Redis{
		client:     client,
		prefix:     prefix,
		ttl:        ttl,
		retryEvery: retryEvery,
	}
}

// Acquire пытается выставить ключ, пока не получится или не истечёт ctx
func (r *Redis) Acquire(ctx context.Context, key string) (Lock, error) {
	fullKey := r.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryEvery)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, fullKey, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
			}
			return nil, fmt.Errorf("roomlock: redis SETNX %s: %w", fullKey, err)
		}
		if ok {
			return &redisLock{client: r.client, key: fullKey, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: key=%s: %v", ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

type redisLock struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (l *redisLock) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("roomlock: redis release %s: %w", l.key, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: key=%s", ErrLockLost, l.key)
	}
	return nil
}
