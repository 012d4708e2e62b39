package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// Service сервис чтения бронирований для персонала салона
type Service struct {
	bookingRepo BookingRepository
	staff       StaffDirectory
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	staff StaffDirectory,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		staff:       staff,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Сотрудник видит только свои бронирования, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, viewerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for staff=%d", id, viewerID)

	viewer, err := s.resolveViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !viewer.CanSeeAllBookings() && booking.StaffID != viewer.ID {
		s.logger.Warn("GetByID: access denied for staff=%d to booking id=%d", viewerID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования, сначала новые
// Роль staff видит только свои бронирования, admin и root - все
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for staff=%d, status=%v", req.ViewerID, req.Status)

	viewer, err := s.resolveViewer(ctx, req.ViewerID)
	if err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for staff=%d: %v", req.ViewerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !viewer.CanSeeAllBookings() {
		filter.StaffID = &viewer.ID
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for staff=%d: %v", req.ViewerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for staff=%d (role=%s)", len(bookings), viewer.ID, viewer.Role)
	return models.FromDomainBookingList(bookings), nil
}

// resolveViewer получает сотрудника, от имени которого выполняется запрос
func (s *Service) resolveViewer(ctx context.Context, viewerID int64) (*domain.Staff, error) {
	if viewerID <= 0 {
		return nil, ErrUnknownViewer
	}

	viewer, err := s.staff.GetStaff(ctx, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			s.logger.Warn("resolveViewer: staff id=%d not found", viewerID)
			return nil, ErrUnknownViewer
		}
		s.logger.Error("resolveViewer: failed to get staff id=%d: %v", viewerID, err)
		return nil, fmt.Errorf("%w: resolveViewer - failed to get staff: %v", ErrInternal, err)
	}

	return viewer, nil
}
