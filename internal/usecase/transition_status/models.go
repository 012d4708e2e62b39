package transition_status

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	ActorID       int64      // Сотрудник из заголовка X-Staff-ID
	BookingID     int64      // ID бронирования
	Status        string     // Новый статус во внешнем виде (включая "Seen")
	SuggestedTime *time.Time // Предложенное время, обязательно для Suggested
	AdminNotes    *string    // Комментарий администратора (nil - не менять)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	ServiceID       int64
	StaffID         int64
	CustomerName    string
	PhoneNumber     string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	Seen            bool
	SuggestedTime   *time.Time
	AdminNotes      *string
	Rescheduled     bool // запись перенесена на предложенное время

	// Денормализованные данные
	ServiceTitle string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func newResponse(b *domain.Booking, rescheduled bool) *Response {
	return &Response{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		StaffID:         b.StaffID,
		CustomerName:    b.CustomerName,
		PhoneNumber:     b.PhoneNumber,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Seen:            b.Seen,
		SuggestedTime:   b.SuggestedTime,
		AdminNotes:      b.AdminNotes,
		Rescheduled:     rescheduled,
		ServiceTitle:    b.ServiceTitle,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
