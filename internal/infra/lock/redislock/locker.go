// Package redislock блокировки по ключу в Redis для нескольких реплик сервиса
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRetryInterval = 25 * time.Millisecond

var (
	// ErrLockUnavailable Redis недоступен
	ErrLockUnavailable = errors.New("redislock: lock backend unavailable")
)

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Client часть API go-redis, нужная для блокировок (*redis.Client, *redis.ClusterClient)
type Client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// Locker SET NX PX с уникальным токеном владельца
type Locker struct {
	rdb    Client
	ttl    time.Duration
	retry  time.Duration
	prefix string
	log    Logger
}

// New создает Locker. ttl ограничивает время жизни блокировки, если процесс упал.
func New(rdb Client, ttl time.Duration, prefix string, log Logger) *Locker {
	return &Locker{
		rdb:    rdb,
		ttl:    ttl,
		retry:  defaultRetryInterval,
		prefix: prefix,
		log:    log,
	}
}

// Lock захватывает ключ, опрашивая Redis до успеха или отмены ctx
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: %v", ErrLockUnavailable, err)
		}
		if ok {
			return l.unlockFunc(fullKey, token), nil
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *Locker) unlockFunc(key, token string) func() {
	return func() {
		// контекст запроса мог уже закончиться, снимаем блокировку независимо от него
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
			l.log.Warn("redislock: failed to release %s (expires in %s): %v", key, l.ttl, err)
		}
	}
}
