package transition_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
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
	staff StaffDirectory,
	txManager TransactionManager,
	locker Locker,
	metrics Metrics,
	config domain.SchedulingConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
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

// Execute выполняет use case смены статуса.
// Принятие предложенного времени переносит запись и проходит ту же проверку
// занятости, что и создание записи (блокировка + сериализуемая транзакция).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionStatus: booking=%d, status=%s, staff=%d", req.BookingID, req.Status, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionStatus: validation failed: %v", err)
		return nil, err
	}

	// 1.1. Сотрудник, который меняет статус
	actor, err := uc.resolveActor(ctx, req.ActorID)
	if err != nil {
		return nil, err
	}

	target, err := scheduling.ParseStatus(req.Status)
	if err != nil {
		uc.logger.Warn("TransitionStatus: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	transition := scheduling.TransitionRequest{
		Status:        req.Status,
		SuggestedTime: req.SuggestedTime,
		AdminNotes:    req.AdminNotes,
	}

	// 2. Получаем текущее время и рабочие часы
	now := uc.timeProvider.Now()

	hours, err := scheduling.HoursFromConfig(uc.config)
	if err != nil {
		uc.logger.Error("TransitionStatus: invalid business hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Получаем бронирование и планируем переход
	current, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, uc.mapError(req.BookingID, err)
	}

	// Сотрудник с ролью staff работает только со своими записями
	if !actor.CanSeeAllBookings() && current.StaffID != actor.ID {
		uc.logger.Warn("TransitionStatus: access denied for staff=%d to booking id=%d", actor.ID, current.ID)
		return nil, ErrAccessDenied
	}

	plan, err := uc.plan(current, transition)
	if err != nil {
		return nil, err
	}

	// 4. Проверяем новое время (предложение или перенос)
	if target == domain.StatusSuggested {
		if err := validateSlot(uc.occupied(current, *plan.SuggestedTime), hours, now); err != nil {
			uc.logger.Warn("TransitionStatus: suggested time rejected: %v", err)
			return nil, err
		}
	}

	if plan.StartTime != nil {
		if err := validateSlot(uc.occupied(current, *plan.StartTime), hours, now); err != nil {
			uc.logger.Warn("TransitionStatus: reschedule rejected: %v", err)
			return nil, err
		}

		// 4.1. Блокировка расписания сотрудника на новый день
		unlock, err := uc.locker.Lock(ctx, lock.StaffDayKey(current.StaffID, hours.Midnight(*plan.StartTime)))
		if err != nil {
			if errors.Is(err, lock.ErrLockTimeout) {
				uc.metrics.BookingConflict("lock")
				return nil, ErrSlotConflict
			}
			uc.logger.Error("TransitionStatus: failed to lock staff id=%d: %v", current.StaffID, err)
			return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
		}
		defer unlock()
	}

	var result *domain.Booking

	// 5. Перечитываем и обновляем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Повторно читаем бронирование с блокировкой строки
		booking, err := uc.getBooking(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		update, err := uc.plan(booking, transition)
		if err != nil {
			return err
		}

		// бронирование изменилось после планирования
		if !sameStart(update.StartTime, plan.StartTime) {
			return errStaffBusy
		}

		// 5.2. При переносе проверяем занятость сотрудника без учета самой записи
		if update.StartTime != nil {
			day := hours.Midnight(*update.StartTime)
			existing, err := uc.bookingRepo.FindForStaffOnDate(txCtx, booking.StaffID, day, domain.NonBlockingStatuses)
			if err != nil {
				return err
			}

			candidate := uc.occupied(booking, *update.StartTime)
			if !uc.resolver.IsAvailable(booking.StaffID, candidate, scheduling.Without(existing, booking.ID)) {
				uc.metrics.BookingConflict("decision")
				return errStaffBusy
			}
		}

		// 5.3. Сохраняем изменения
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, update); err != nil {
			return err
		}

		update.Apply(booking)
		result = booking
		return nil
	})

	if err != nil {
		return nil, uc.mapError(req.BookingID, err)
	}

	uc.metrics.StatusTransition(string(current.Status), string(target))
	uc.logger.Info("TransitionStatus: booking id=%d %s -> %s (seen=%t)",
		result.ID, current.Status, result.Status, result.Seen)

	return newResponse(result, plan.StartTime != nil), nil
}

// resolveActor получает сотрудника, от имени которого выполняется запрос
func (uc *UseCase) resolveActor(ctx context.Context, actorID int64) (*domain.Staff, error) {
	if actorID <= 0 {
		return nil, ErrUnknownActor
	}

	actor, err := uc.staff.GetStaff(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			uc.logger.Warn("TransitionStatus: staff id=%d not found", actorID)
			return nil, ErrUnknownActor
		}
		uc.logger.Error("TransitionStatus: failed to get staff id=%d: %v", actorID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	return actor, nil
}

// getBooking получает бронирование (внутри транзакции - с блокировкой строки)
func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("TransitionStatus: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// plan вычисляет изменения, переводя ошибки автомата в ошибки use case
func (uc *UseCase) plan(b *domain.Booking, req scheduling.TransitionRequest) (domain.StatusUpdate, error) {
	update, err := scheduling.Transition(b, req)
	switch {
	case err == nil:
		return update, nil
	case errors.Is(err, scheduling.ErrSuggestedTimeRequired):
		uc.logger.Warn("TransitionStatus: booking id=%d: %v", b.ID, err)
		return domain.StatusUpdate{}, ErrSuggestedTimeRequired
	case errors.Is(err, scheduling.ErrInvalidTransition):
		uc.logger.Warn("TransitionStatus: booking id=%d: %v", b.ID, err)
		return domain.StatusUpdate{}, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	default:
		return domain.StatusUpdate{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// occupied интервал записи, если бы она начиналась в start
func (uc *UseCase) occupied(b *domain.Booking, start time.Time) scheduling.Interval {
	moved := *b
	moved.StartTime = start.In(uc.config.Loc())
	return uc.resolver.OccupiedInterval(&moved)
}

// mapError переводит ошибки транзакции в ошибки use case
func (uc *UseCase) mapError(id int64, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrSuggestedTimeRequired),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, errStaffBusy):
		uc.logger.Warn("TransitionStatus: booking id=%d cannot be moved, staff is busy", id)
		return ErrSlotConflict
	case errors.Is(err, bookingRepo.ErrSlotConflict), errors.Is(err, txmanager.ErrSerializationFailure):
		uc.metrics.BookingConflict("commit")
		uc.logger.Warn("TransitionStatus: commit conflict for booking id=%d: %v", id, err)
		return ErrSlotConflict
	default:
		uc.logger.Error("TransitionStatus: failed to update booking id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
	}
}
