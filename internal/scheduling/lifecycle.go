package scheduling

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidTransition переход не разрешен из текущего статуса (или статус неизвестен)
	ErrInvalidTransition = errors.New("scheduling: invalid status transition")

	// ErrSuggestedTimeRequired для статуса Suggested нужно предложенное время
	ErrSuggestedTimeRequired = errors.New("scheduling: suggested time is required")
)

// transitions разрешенные переходы рабочего статуса.
// Отметка Seen не меняет статус и разрешена из любого состояния.
var transitions = map[domain.BookingStatus][]domain.BookingStatus{
	domain.StatusPending:   {domain.StatusApproved, domain.StatusRejected, domain.StatusSuggested},
	domain.StatusApproved:  {domain.StatusCompleted},
	domain.StatusSuggested: {domain.StatusApproved, domain.StatusRejected},
}

// ParseStatus переводит внешнее значение статуса в доменное (регистр не важен)
func ParseStatus(raw string) (domain.BookingStatus, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, string(domain.StatusSeen)) {
		return domain.StatusSeen, nil
	}
	for _, s := range domain.WorkflowStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, raw)
}

// CanTransition проверяет таблицу переходов
func CanTransition(from, to domain.BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionRequest запрошенное изменение статуса
type TransitionRequest struct {
	Status        string
	SuggestedTime *time.Time
	AdminNotes    *string
}

// Transition вычисляет изменения для бронирования, не применяя их.
// Принятие предложенного времени (Suggested -> Approved) переносит запись на SuggestedTime,
// поэтому вызывающий код обязан повторно проверить доступность сотрудника.
func Transition(b *domain.Booking, req TransitionRequest) (domain.StatusUpdate, error) {
	target, err := ParseStatus(req.Status)
	if err != nil {
		return domain.StatusUpdate{}, err
	}

	update := domain.StatusUpdate{
		Status:        b.Status,
		Seen:          b.Seen,
		SuggestedTime: b.SuggestedTime,
		AdminNotes:    b.AdminNotes,
	}
	if req.AdminNotes != nil {
		update.AdminNotes = req.AdminNotes
	}

	if target == domain.StatusSeen {
		update.Seen = true
		return update, nil
	}

	if !CanTransition(b.Status, target) {
		return domain.StatusUpdate{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, target)
	}
	update.Status = target

	switch {
	case target == domain.StatusSuggested:
		if req.SuggestedTime == nil || req.SuggestedTime.IsZero() {
			return domain.StatusUpdate{}, ErrSuggestedTimeRequired
		}
		update.SuggestedTime = req.SuggestedTime

	case b.Status == domain.StatusSuggested && target == domain.StatusApproved:
		if b.SuggestedTime != nil && !b.SuggestedTime.Equal(b.StartTime) {
			start := *b.SuggestedTime
			update.StartTime = &start
		}
		update.SuggestedTime = nil
	}

	return update, nil
}
