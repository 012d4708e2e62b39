package transition_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_status: booking not found")

	// ErrUnknownActor возвращается, когда сотрудник из заголовка не найден
	ErrUnknownActor = errors.New("transition_status: unknown staff member")

	// ErrAccessDenied возвращается, когда сотрудник меняет чужое бронирование
	ErrAccessDenied = errors.New("transition_status: access denied")

	// ErrInvalidTransition возвращается, когда переход запрещен или статус неизвестен
	ErrInvalidTransition = errors.New("transition_status: invalid status transition")

	// ErrSuggestedTimeRequired возвращается, когда для Suggested не передано время
	ErrSuggestedTimeRequired = errors.New("transition_status: suggested time is required")

	// ErrInvalidTimeSlot возвращается, когда предложенное время не на сетке или вне рабочих часов
	ErrInvalidTimeSlot = errors.New("transition_status: invalid time slot")

	// ErrTooLateToBook возвращается, когда предложенное время уже прошло
	ErrTooLateToBook = errors.New("transition_status: suggested time has already passed")

	// ErrSlotConflict возвращается, когда при переносе сотрудник занят
	ErrSlotConflict = errors.New("transition_status: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_status: internal error")

	// errStaffBusy новое время пересекается с другим бронированием сотрудника
	errStaffBusy = errors.New("transition_status: staff is busy")
)
