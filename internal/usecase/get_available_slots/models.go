package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	Date      time.Time             // Календарная дата (время суток игнорируется)
	ServiceID int64                 // ID услуги, 0 - длительность по умолчанию
	Staff     domain.StaffSelection // Конкретный сотрудник или любой
}

// Response модель ответа со списком слотов
type Response struct {
	Date            time.Time             // Полночь дня в часовом поясе салона
	ServiceID       int64                 // ID услуги
	Staff           domain.StaffSelection // Выбор сотрудника из запроса
	DurationMinutes int                   // Длительность, по которой строилась сетка
	Slots           []domain.Slot         // Все слоты сетки по порядку, включая недоступные
}
