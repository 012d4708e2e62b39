package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SchedulingConfig represents the salon-wide scheduling settings.
// Business hours are the same for every day of the week.
type SchedulingConfig struct {
	OpeningTime            types.TimeString
	ClosingTime            types.TimeString
	SlotGranularityMinutes int
	DefaultDurationMinutes int // используется, если у услуги нет корректной длительности
	AdvanceBookingDays     int // 0 = unlimited
	Location               *time.Location
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *SchedulingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// Granularity returns the slot step
func (c *SchedulingConfig) Granularity() time.Duration {
	return time.Duration(c.SlotGranularityMinutes) * time.Minute
}

// DefaultDuration returns the fallback booking length
func (c *SchedulingConfig) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationMinutes) * time.Minute
}

// Loc returns the salon time zone (UTC if unset)
func (c *SchedulingConfig) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Day returns midnight of the given calendar date in the salon time zone
func (c *SchedulingConfig) Day(t time.Time) time.Time {
	y, m, d := t.In(c.Loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Loc())
}
