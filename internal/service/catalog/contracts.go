package catalog

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
}

// StaffDirectory интерфейс справочника сотрудников
type StaffDirectory interface {
	ListBookableStaff(ctx context.Context) ([]*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
