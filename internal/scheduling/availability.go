package scheduling

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// DefaultFallbackDuration длительность, если у бронирования она не указана
const DefaultFallbackDuration = domain.DefaultDurationMinutes * time.Minute

// Resolver отвечает на вопрос "свободен ли сотрудник" по списку бронирований
type Resolver struct {
	fallback time.Duration
}

// NewResolver создает Resolver. fallback <= 0 заменяется на DefaultFallbackDuration.
func NewResolver(fallback time.Duration) *Resolver {
	if fallback <= 0 {
		fallback = DefaultFallbackDuration
	}
	return &Resolver{fallback: fallback}
}

// OccupiedInterval интервал, который занимает бронирование
func (r *Resolver) OccupiedInterval(b *domain.Booking) Interval {
	d := time.Duration(b.DurationMinutes) * time.Minute
	if d <= 0 {
		d = r.fallback
	}
	return NewInterval(b.StartTime, d)
}

// IsAvailable true, если ни одно блокирующее бронирование сотрудника не пересекает candidate
func (r *Resolver) IsAvailable(staffID int64, candidate Interval, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.StaffID != staffID || !b.IsBlocking() {
			continue
		}
		if r.OccupiedInterval(b).Overlaps(candidate) {
			return false
		}
	}
	return true
}

// AnyAvailable true, если свободен хотя бы один сотрудник из roster
func (r *Resolver) AnyAvailable(roster []int64, candidate Interval, bookings []*domain.Booking) bool {
	for _, staffID := range roster {
		if r.IsAvailable(staffID, candidate, bookings) {
			return true
		}
	}
	return false
}

// Without возвращает бронирования без указанного (для проверки переноса записи)
func Without(bookings []*domain.Booking, id int64) []*domain.Booking {
	out := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}
