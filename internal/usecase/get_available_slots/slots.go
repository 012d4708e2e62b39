package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// buildSlots размечает каждый кандидат сетки.
// Слот доступен, если он заканчивается не позже закрытия, начинается не раньше now
// и хотя бы один сотрудник из roster свободен на весь интервал.
func buildSlots(
	grid *scheduling.Grid,
	resolver *scheduling.Resolver,
	roster []int64,
	bookings []*domain.Booking,
	now time.Time,
) []domain.Slot {
	slots := make([]domain.Slot, 0, grid.Len())

	for c := range grid.Candidates() {
		available := c.WithinHours &&
			!c.Start.Before(now) &&
			resolver.AnyAvailable(roster, c.Interval, bookings)

		slots = append(slots, domain.Slot{
			Time:      types.TimeString(c.Label()),
			Available: available,
		})
	}

	return slots
}

// staffIDs идентификаторы сотрудников
func staffIDs(staff []*domain.Staff) []int64 {
	ids := make([]int64, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids
}
