package staffdirectory

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Staff модель сотрудника из справочника
type Staff struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`   // staff, admin, root
	Active      *bool  `json:"active"` // отсутствует - считаем активным
}

// ToDomain конвертирует ответ справочника в доменную модель
func (s Staff) ToDomain() *domain.Staff {
	active := true
	if s.Active != nil {
		active = *s.Active
	}
	return &domain.Staff{
		ID:          s.ID,
		DisplayName: s.DisplayName,
		Role:        domain.StaffRole(s.Role),
		Active:      active,
	}
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Directory источник сотрудников (таблица staff или этот клиент)
type Directory interface {
	ListBookableStaff(ctx context.Context) ([]*domain.Staff, error)
	GetStaff(ctx context.Context, id int64) (*domain.Staff, error)
}

var _ Directory = (*Client)(nil)
