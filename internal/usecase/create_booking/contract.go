package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindOnDate(ctx context.Context, staffIDs []int64, date time.Time, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error)
	FindForStaffOnDate(ctx context.Context, staffID int64, date time.Time, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// StaffDirectory интерфейс справочника сотрудников
type StaffDirectory interface {
	ListBookableStaff(ctx context.Context) ([]*domain.Staff, error)
	GetStaff(ctx context.Context, id int64) (*domain.Staff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка расписания сотрудника на день
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Metrics доменные метрики записи
type Metrics interface {
	BookingCreated(selection string)
	BookingConflict(stage string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
