package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID    int64                 // ID услуги
	Staff        domain.StaffSelection // Конкретный сотрудник или любой
	CustomerName string                // Имя клиента
	PhoneNumber  string                // Телефон клиента
	StartTime    time.Time             // Начало записи
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ServiceID       int64
	StaffID         int64
	AutoAssigned    bool // сотрудник выбран автоматически
	CustomerName    string
	PhoneNumber     string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	Seen            bool

	// Денормализованные данные
	ServiceTitle string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newResponse(b *domain.Booking, autoAssigned bool) *Response {
	return &Response{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		StaffID:         b.StaffID,
		AutoAssigned:    autoAssigned,
		CustomerName:    b.CustomerName,
		PhoneNumber:     b.PhoneNumber,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Seen:            b.Seen,
		ServiceTitle:    b.ServiceTitle,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
