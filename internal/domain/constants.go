package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 15
	DefaultDurationMinutes        = 15
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
)

// Business validation constants
const (
	MaxCustomerNameLength = 100
	MinPhoneNumberLength  = 5
	MaxPhoneNumberLength  = 20
	MaxAdminNotesLength   = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NonBlockingStatuses статусы, которые не занимают время сотрудника
var NonBlockingStatuses = []BookingStatus{
	StatusRejected,
}

// WorkflowStatuses все статусы, которые хранятся в БД
var WorkflowStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusSuggested,
	StatusCompleted,
}
