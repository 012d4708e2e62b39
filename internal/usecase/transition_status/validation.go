package transition_status

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Status) == "" {
		return fmt.Errorf("%w: status is required", ErrInvalidInput)
	}

	if req.AdminNotes != nil && utf8.RuneCountInString(*req.AdminNotes) > domain.MaxAdminNotesLength {
		return fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxAdminNotesLength)
	}

	return nil
}

// validateSlot проверяет, что новое время в будущем, на сетке и внутри рабочих часов
func validateSlot(iv scheduling.Interval, hours scheduling.BusinessHours, now time.Time) error {
	if iv.Start.Before(now) {
		return fmt.Errorf("%w: %s", ErrTooLateToBook, iv.Start.Format(time.RFC3339))
	}

	if !iv.Within(hours.Window(iv.Start)) || !hours.IsAligned(iv.Start) {
		return fmt.Errorf("%w: %s-%s",
			ErrInvalidTimeSlot, iv.Start.Format(domain.TimeFormat), iv.End.Format(domain.TimeFormat))
	}

	return nil
}

// sameStart сравнивает планируемые переносы двух вычислений перехода
func sameStart(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
