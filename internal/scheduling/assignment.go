package scheduling

import (
	"errors"
	"slices"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ErrNoStaffAvailable ни один сотрудник не свободен (или список пуст)
var ErrNoStaffAvailable = errors.New("scheduling: no staff available")

// SortRoster возвращает копию списка по возрастанию id без дублей
func SortRoster(roster []int64) []int64 {
	out := slices.Clone(roster)
	slices.Sort(out)
	return slices.Compact(out)
}

// Assign первый свободный сотрудник в порядке roster
func (r *Resolver) Assign(candidate Interval, roster []int64, bookings []*domain.Booking) (int64, error) {
	for _, staffID := range roster {
		if r.IsAvailable(staffID, candidate, bookings) {
			return staffID, nil
		}
	}
	return 0, ErrNoStaffAvailable
}
