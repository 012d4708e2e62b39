package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ServiceID < 0 {
		return fmt.Errorf("%w: serviceID must not be negative", ErrInvalidInput)
	}

	return nil
}

// calendarDay полночь календарной даты date в часовом поясе loc
func calendarDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// validateDate проверяет, что день не в прошлом и укладывается в горизонт записи.
// "Сегодня" считается по часам салона.
func validateDate(day, now time.Time, cfg *domain.SchedulingConfig) error {
	today := cfg.Day(now)

	if day.Before(today) {
		return ErrInvalidDate
	}

	if !cfg.HasAdvanceBookingLimit() {
		return nil
	}

	if day.After(today.AddDate(0, 0, cfg.AdvanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, cfg.AdvanceBookingDays)
	}

	return nil
}
