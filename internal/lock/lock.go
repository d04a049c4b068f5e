// Package lock provides named, expiring run locks for maintenance jobs so that
// overlapping invocations across instances do not process the same rows twice.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned by Acquire when another holder owns the lock.
var ErrLocked = errors.New("lock is held by another run")

// ReleaseFunc gives a lock back. Releasing a lock that already expired is not an error.
type ReleaseFunc func(ctx context.Context) error

// Locker hands out named locks.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (ReleaseFunc, error)
}

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX on a shared Redis.
type RedisLocker struct {
	client *redis.Client
	prefix string
}

// NewRedisLocker creates a locker using the provided Redis client.
func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, prefix: "taskboard:lock:"}
}

// Open connects to the Redis at url. An empty url yields a Noop locker.
func Open(ctx context.Context, url string) (Locker, func() error, error) {
	if url == "" {
		return Noop{}, func() error { return nil }, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisLocker(client), client.Close, nil
}

// Acquire takes the lock for ttl or fails with ErrLocked.
func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (ReleaseFunc, error) {
	key := l.prefix + name
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", name, err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}, nil
}

// Noop grants every lock immediately. It is used when Redis is not configured.
type Noop struct{}

func (Noop) Acquire(context.Context, string, time.Duration) (ReleaseFunc, error) {
	return func(context.Context) error { return nil }, nil
}
