package staffdirectory

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден или на него нельзя записаться
	ErrStaffNotFound = fmt.Errorf("staffdirectory client: %w", domain.ErrStaffNotFound)

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffdirectory client: internal error")

	// ErrUnavailable возвращается, когда справочник недоступен
	ErrUnavailable = errors.New("staffdirectory client: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffdirectory client: invalid response")
)
