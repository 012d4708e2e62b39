package redislock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis хранит ключи в памяти и исполняет releaseScript как compare-and-delete
type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	failSet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSet != nil {
		return redis.NewBoolResult(false, f.failSet)
	}
	if _, exists := f.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) compareAndDelete(keys []string, args []interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.data[keys[0]] == args[0].(string) {
		delete(f.data, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalRO(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) EvalShaRO(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	return f.compareAndDelete(keys, args)
}

func (f *fakeRedis) ScriptExists(_ context.Context, hashes ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult(make([]bool, len(hashes)), nil)
}

func (f *fakeRedis) ScriptLoad(_ context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("sha", nil)
}

func (f *fakeRedis) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestLocker_LockUnlock(t *testing.T) {
	rdb := newFakeRedis()
	l := New(rdb, time.Second, "lock:", nopLogger{})

	unlock, err := l.Lock(context.Background(), "staff:1:2025-05-01")
	require.NoError(t, err)
	assert.True(t, rdb.has("lock:staff:1:2025-05-01"))

	unlock()
	assert.False(t, rdb.has("lock:staff:1:2025-05-01"))
}

func TestLocker_WaitsForRelease(t *testing.T) {
	rdb := newFakeRedis()
	l := New(rdb, time.Second, "lock:", nopLogger{})

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := l.Lock(context.Background(), "k")
		if assert.NoError(t, err) {
			second()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while the first is held")
	case <-time.After(60 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock was not acquired after release")
	}
}

func TestLocker_ContextTimeout(t *testing.T) {
	rdb := newFakeRedis()
	l := New(rdb, time.Second, "lock:", nopLogger{})

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocker_ForeignTokenNotReleased(t *testing.T) {
	rdb := newFakeRedis()
	l := New(rdb, time.Second, "lock:", nopLogger{})

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	// блокировка истекла и ключ занял другой владелец
	rdb.mu.Lock()
	rdb.data["lock:k"] = "someone-else"
	rdb.mu.Unlock()

	unlock()
	assert.True(t, rdb.has("lock:k"))
}

func TestLocker_BackendError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failSet = errors.New("connection refused")
	l := New(rdb, time.Second, "lock:", nopLogger{})

	_, err := l.Lock(context.Background(), "k")
	assert.ErrorIs(t, err, ErrLockUnavailable)
}
