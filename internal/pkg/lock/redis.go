package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker is a best-effort single-flight lock. Acquire returns false when the
// key is already held; callers fall back to their read-check-write path when
// the lock backend is unavailable.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Release(ctx context.Context, key, token string) error
}

type RedisLock struct {
	client *redis.Client
}

func NewRedisLock(addr, password string, db int) (*RedisLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("lock: redis ping: %w", err)
	}

	return &RedisLock{client: client}, nil
}

func (r *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, "lock:"+key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("lock: acquire %s: %w", key, err)
	}
	return token, ok, nil
}

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock re-acquired by another caller is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (r *RedisLock) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, r.client, []string{"lock:" + key}, token).Err(); err != nil {
		return fmt.Errorf("lock: release %s: %w", key, err)
	}
	return nil
}

func (r *RedisLock) Close() error {
	return r.client.Close()
}
