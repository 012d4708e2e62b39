package create_booking

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
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if err := validatePhone(strings.TrimSpace(req.PhoneNumber)); err != nil {
		return err
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	return nil
}

// validatePhone проверяет длину и допустимые символы телефона
func validatePhone(phone string) error {
	if len(phone) < domain.MinPhoneNumberLength || len(phone) > domain.MaxPhoneNumberLength {
		return fmt.Errorf("%w: phoneNumber must be %d-%d characters",
			ErrInvalidInput, domain.MinPhoneNumberLength, domain.MaxPhoneNumberLength)
	}

	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: phoneNumber contains invalid character %q", ErrInvalidInput, r)
		}
	}

	return nil
}

// validateInterval проверяет, что запись в будущем, на сетке и внутри рабочих часов
func validateInterval(iv scheduling.Interval, hours scheduling.BusinessHours, now time.Time, advanceBookingDays int) error {
	day := hours.Midnight(iv.Start)
	today := hours.Midnight(now)

	if day.Before(today) {
		return ErrInvalidDate
	}

	if iv.Start.Before(now) {
		return fmt.Errorf("%w: startTime %s has already passed", ErrTooLateToBook, iv.Start.Format(time.RFC3339))
	}

	if advanceBookingDays > 0 && day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	if !iv.Within(hours.Window(iv.Start)) {
		return fmt.Errorf("%w: %s-%s is outside business hours",
			ErrInvalidTimeSlot, iv.Start.Format(domain.TimeFormat), iv.End.Format(domain.TimeFormat))
	}

	if !hours.IsAligned(iv.Start) {
		return fmt.Errorf("%w: %s is not on the slot grid", ErrInvalidTimeSlot, iv.Start.Format(domain.TimeFormat))
	}

	return nil
}
