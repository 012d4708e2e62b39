package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// UseCase use case для получения слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	staff        StaffDirectory
	config       domain.SchedulingConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	staff StaffDirectory,
	config domain.SchedulingConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		staff:        staff,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов. Только чтение, ничего не изменяет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, service=%d, staff=%s",
		req.Date.Format(domain.DateFormat), req.ServiceID, req.Staff)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и день в часовом поясе салона
	now := uc.timeProvider.Now()
	day := calendarDay(req.Date, uc.config.Loc())

	// 3. Валидация даты
	if err := validateDate(day, now, &uc.config); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Определяем длительность услуги
	duration, err := uc.resolveDuration(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 5. Определяем список сотрудников
	roster, err := uc.resolveRoster(ctx, req.Staff)
	if err != nil {
		return nil, err
	}

	// 6. Получаем блокирующие бронирования сотрудников на день
	var bookings []*domain.Booking
	if len(roster) > 0 {
		bookings, err = uc.bookingRepo.FindOnDate(ctx, roster, day, domain.NonBlockingStatuses)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
	}

	// 7. Строим сетку и размечаем слоты
	hours, err := scheduling.HoursFromConfig(uc.config)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid business hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	grid, err := scheduling.NewGrid(day, duration, hours)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build grid: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resolver := scheduling.NewResolver(uc.config.DefaultDuration())
	slots := buildSlots(grid, resolver, roster, bookings, now)

	uc.logger.Info("GetAvailableSlots: %d/%d slots available for %d staff",
		domain.CountAvailable(slots), len(slots), len(roster))

	return &Response{
		Date:            day,
		ServiceID:       req.ServiceID,
		Staff:           req.Staff,
		DurationMinutes: int(duration / time.Minute),
		Slots:           slots,
	}, nil
}

// resolveDuration длительность услуги или значение по умолчанию
func (uc *UseCase) resolveDuration(ctx context.Context, serviceID int64) (time.Duration, error) {
	if serviceID == 0 {
		return uc.config.DefaultDuration(), nil
	}

	service, err := uc.serviceRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", serviceID)
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", serviceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.HasValidDuration() {
		uc.logger.Warn("GetAvailableSlots: service id=%d has no duration, using default %d min",
			serviceID, uc.config.DefaultDurationMinutes)
		return uc.config.DefaultDuration(), nil
	}

	return time.Duration(service.DurationMinutes) * time.Minute, nil
}

// resolveRoster конкретный сотрудник или все доступные по возрастанию id
func (uc *UseCase) resolveRoster(ctx context.Context, sel domain.StaffSelection) ([]int64, error) {
	if id, pinned := sel.StaffID(); pinned {
		if _, err := uc.staff.GetStaff(ctx, id); err != nil {
			if errors.Is(err, domain.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%d not found", id)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		return []int64{id}, nil
	}

	staff, err := uc.staff.ListBookableStaff(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	return scheduling.SortRoster(staffIDs(staff)), nil
}
