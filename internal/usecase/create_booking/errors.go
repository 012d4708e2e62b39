package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrStaffNotFound возвращается, когда выбранный сотрудник не найден
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда интервал не на сетке или выходит за рабочие часы
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда время начала уже прошло
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotConflict возвращается, когда выбранный сотрудник занят в этот интервал
	ErrSlotConflict = errors.New("create_booking: slot is already taken")

	// ErrNoStaffAvailable возвращается, когда автоназначение не нашло свободного сотрудника
	ErrNoStaffAvailable = errors.New("create_booking: no staff available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")

	// errStaffBusy сотрудник оказался занят при проверке под блокировкой или при фиксации
	errStaffBusy = errors.New("create_booking: staff is busy")
)
