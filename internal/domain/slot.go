package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// Slot is a candidate start time on the grid of a day
type Slot struct {
	Time      types.TimeString
	Available bool
}

// CountAvailable returns the number of bookable slots
func CountAvailable(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
