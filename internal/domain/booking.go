package domain

import "time"

// BookingStatus represents the workflow status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusApproved  BookingStatus = "Approved"
	StatusRejected  BookingStatus = "Rejected"
	StatusSuggested BookingStatus = "Suggested"
	StatusCompleted BookingStatus = "Completed"

	// StatusSeen is accepted from clients as a status value, but is stored
	// as the Seen flag and never replaces the workflow status.
	StatusSeen BookingStatus = "Seen"
)

// Booking represents a customer's reservation of a staff member for a service
type Booking struct {
	ID              int64
	ServiceID       int64
	StaffID         int64
	CustomerName    string
	PhoneNumber     string
	StartTime       time.Time
	DurationMinutes int // снимок длительности услуги на момент создания
	Status          BookingStatus
	Seen            bool
	SuggestedTime   *time.Time
	AdminNotes      *string

	// Denormalized data for history
	ServiceTitle string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the exclusive end of the occupied interval
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsBlocking returns true if the booking occupies its staff member's time.
// Only rejected bookings release the time.
func (b *Booking) IsBlocking() bool {
	return b.Status != StatusRejected
}

// IsTerminal returns true if no further workflow transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusRejected || b.Status == StatusCompleted
}

// StatusUpdate набор изменений, применяемых при смене статуса
type StatusUpdate struct {
	Status        BookingStatus
	Seen          bool
	SuggestedTime *time.Time
	AdminNotes    *string

	// StartTime задан только при переносе записи (принятие предложенного времени)
	StartTime *time.Time
}

// Apply применяет изменения к бронированию
func (u StatusUpdate) Apply(b *Booking) {
	b.Status = u.Status
	b.Seen = u.Seen
	b.SuggestedTime = u.SuggestedTime
	b.AdminNotes = u.AdminNotes
	if u.StartTime != nil {
		b.StartTime = *u.StartTime
	}
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	StaffID *int64         // только бронирования сотрудника (nil - все)
	From    *time.Time     // начало периода по StartTime (включительно)
	To      *time.Time     // конец периода по StartTime (не включительно)
	Status  *BookingStatus // фильтр по статусу
}
