// Package lock общие части блокировок расписания сотрудника
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// ErrLockTimeout блокировку не удалось получить за отведенное время
var ErrLockTimeout = errors.New("lock: wait timeout")

// Locker блокировка по ключу
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// StaffDayKey ключ блокировки расписания сотрудника на день
func StaffDayKey(staffID int64, day time.Time) string {
	return fmt.Sprintf("staff:%d:%s", staffID, day.Format(domain.DateFormat))
}

// Instrumented ограничивает ожидание и снимает метрики
type Instrumented struct {
	next        Locker
	backend     string
	waitTimeout time.Duration
	metrics     *metrics.Metrics
}

// Instrument оборачивает Locker. waitTimeout <= 0 - ждать, пока жив ctx.
func Instrument(next Locker, backend string, waitTimeout time.Duration, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, backend: backend, waitTimeout: waitTimeout, metrics: m}
}

// Lock захватывает ключ
func (l *Instrumented) Lock(ctx context.Context, key string) (func(), error) {
	start := time.Now()

	waitCtx := ctx
	if l.waitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.waitTimeout)
		defer cancel()
	}

	unlock, err := l.next.Lock(waitCtx, key)
	l.metrics.ObserveLockAcquire(l.backend, err, time.Since(start))

	if err != nil {
		// истек только таймаут ожидания, а не запрос целиком
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
		return nil, err
	}

	return unlock, nil
}
