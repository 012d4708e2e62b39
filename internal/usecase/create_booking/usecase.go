package create_booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// Стадии, на которых обнаружен конфликт (метка метрики)
const (
	conflictStageDecision = "decision"
	conflictStageCommit   = "commit"
	conflictStageLock     = "lock"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	staff        StaffDirectory
	txManager    TransactionManager
	locker       Locker
	metrics      Metrics
	config       domain.SchedulingConfig
	resolver     *scheduling.Resolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	staff StaffDirectory,
	txManager TransactionManager,
	locker Locker,
	metrics Metrics,
	config domain.SchedulingConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		staff:        staff,
		txManager:    txManager,
		locker:       locker,
		metrics:      metrics,
		config:       config,
		resolver:     scheduling.NewResolver(config.DefaultDuration()),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Для каждого пробуемого сотрудника проверка и вставка выполняются под блокировкой
// расписания сотрудника на день в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, staff=%s, start=%s",
		req.ServiceID, req.Staff, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу и длительность
	service, err := uc.serviceRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration := uc.config.DefaultDuration()
	if service.HasValidDuration() {
		duration = time.Duration(service.DurationMinutes) * time.Minute
	} else {
		uc.logger.Warn("CreateBooking: service id=%d has no duration, using default %d min",
			service.ID, uc.config.DefaultDurationMinutes)
	}

	// 4. Проверяем интервал относительно рабочих часов
	hours, err := scheduling.HoursFromConfig(uc.config)
	if err != nil {
		uc.logger.Error("CreateBooking: invalid business hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	interval := scheduling.NewInterval(req.StartTime.In(uc.config.Loc()), duration)
	if err := validateInterval(interval, hours, now, uc.config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: interval validation failed: %v", err)
		return nil, err
	}

	booking := &domain.Booking{
		ServiceID:       service.ID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		StartTime:       interval.Start,
		DurationMinutes: int(duration / time.Minute),
		Status:          domain.StatusPending,
		ServiceTitle:    service.Title,
	}
	day := hours.Midnight(interval.Start)

	// 5. Конкретный сотрудник: без отката на автоназначение
	if staffID, pinned := req.Staff.StaffID(); pinned {
		if _, err := uc.staff.GetStaff(ctx, staffID); err != nil {
			if errors.Is(err, domain.ErrStaffNotFound) {
				uc.logger.Warn("CreateBooking: staff id=%d not found", staffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", staffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}

		created, err := uc.tryBook(ctx, staffID, day, interval, booking)
		if err != nil {
			if errors.Is(err, errStaffBusy) {
				uc.logger.Warn("CreateBooking: staff id=%d is busy at %s", staffID, interval.Start.Format(time.RFC3339))
				return nil, ErrSlotConflict
			}
			return nil, err
		}

		uc.metrics.BookingCreated(req.Staff.Mode())
		uc.logger.Info("CreateBooking: successfully created booking id=%d for staff id=%d", created.ID, staffID)
		return newResponse(created, false), nil
	}

	// 6. Любой сотрудник: первый свободный по возрастанию id
	created, err := uc.autoAssign(ctx, day, interval, booking)
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingCreated(req.Staff.Mode())
	uc.logger.Info("CreateBooking: successfully created booking id=%d, auto-assigned staff id=%d", created.ID, created.StaffID)
	return newResponse(created, true), nil
}

// autoAssign перебирает сотрудников в порядке roster. Предварительное чтение
// только выбирает кандидата, окончательная проверка делается в tryBook.
func (uc *UseCase) autoAssign(
	ctx context.Context,
	day time.Time,
	interval scheduling.Interval,
	booking *domain.Booking,
) (*domain.Booking, error) {
	staff, err := uc.staff.ListBookableStaff(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	roster := make([]int64, 0, len(staff))
	for _, s := range staff {
		roster = append(roster, s.ID)
	}
	roster = scheduling.SortRoster(roster)

	if len(roster) == 0 {
		uc.logger.Warn("CreateBooking: roster is empty")
		return nil, ErrNoStaffAvailable
	}

	bookings, err := uc.bookingRepo.FindOnDate(ctx, roster, day, domain.NonBlockingStatuses)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	for len(roster) > 0 {
		staffID, err := uc.resolver.Assign(interval, roster, bookings)
		if err != nil {
			break
		}

		created, err := uc.tryBook(ctx, staffID, day, interval, booking)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errStaffBusy) {
			return nil, err
		}

		uc.logger.Info("CreateBooking: staff id=%d became busy, trying next", staffID)
		roster = slices.DeleteFunc(roster, func(id int64) bool { return id == staffID })
	}

	uc.logger.Warn("CreateBooking: no staff available at %s", interval.Start.Format(time.RFC3339))
	return nil, ErrNoStaffAvailable
}

// tryBook записывает клиента к сотруднику, если тот свободен.
// Возвращает errStaffBusy, если интервал занят на момент проверки или фиксации.
func (uc *UseCase) tryBook(
	ctx context.Context,
	staffID int64,
	day time.Time,
	interval scheduling.Interval,
	booking *domain.Booking,
) (*domain.Booking, error) {
	// 1. Блокировка расписания сотрудника на день
	unlock, err := uc.locker.Lock(ctx, lock.StaffDayKey(staffID, day))
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.metrics.BookingConflict(conflictStageLock)
			return nil, errStaffBusy
		}
		uc.logger.Error("CreateBooking: failed to lock staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer unlock()

	var result *domain.Booking

	// 2. Проверка и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Перечитываем бронирования сотрудника с блокировкой строк (FOR UPDATE)
		existing, err := uc.bookingRepo.FindForStaffOnDate(txCtx, staffID, day, domain.NonBlockingStatuses)
		if err != nil {
			return err
		}

		// 2.2. Проверяем пересечение
		if !uc.resolver.IsAvailable(staffID, interval, existing) {
			uc.metrics.BookingConflict(conflictStageDecision)
			return errStaffBusy
		}

		// 2.3. Сохраняем бронирование
		candidate := *booking
		candidate.StaffID = staffID

		created, err := uc.bookingRepo.Create(txCtx, &candidate)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, errStaffBusy):
		return nil, errStaffBusy
	case errors.Is(err, bookingRepo.ErrSlotConflict), errors.Is(err, txmanager.ErrSerializationFailure):
		// проиграли гонку на фиксации: для клиента это тот же конфликт
		uc.metrics.BookingConflict(conflictStageCommit)
		uc.logger.Warn("CreateBooking: commit conflict for staff id=%d: %v", staffID, err)
		return nil, errStaffBusy
	default:
		uc.logger.Error("CreateBooking: failed to create booking for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}
