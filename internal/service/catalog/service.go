package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

// Service сервис справочных данных для страницы записи:
// услуги, сотрудники и настройки расписания
type Service struct {
	serviceRepo ServiceRepository
	staff       StaffDirectory
	config      domain.SchedulingConfig
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	staff StaffDirectory,
	config domain.SchedulingConfig,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		staff:       staff,
		config:      config,
		logger:      logger,
	}
}

// ListServices получает все услуги
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services", len(services))
	return models.FromDomainServiceList(services, s.config.DefaultDurationMinutes), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	service, err := s.serviceRepo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service, s.config.DefaultDurationMinutes), nil
}

// ListStaff получает сотрудников, на которых можно записаться, по возрастанию id
func (s *Service) ListStaff(ctx context.Context) (*models.StaffListResponse, error) {
	staff, err := s.staff.ListBookableStaff(ctx)
	if err != nil {
		s.logger.Error("ListStaff: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - failed to list staff: %v", ErrInternal, err)
	}

	s.logger.Info("ListStaff: fetched %d staff", len(staff))
	return models.FromDomainStaffList(staff), nil
}

// GetSettings возвращает настройки расписания салона
func (s *Service) GetSettings(context.Context) (*models.SettingsResponse, error) {
	if _, err := scheduling.HoursFromConfig(s.config); err != nil {
		s.logger.Error("GetSettings: invalid business hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromSchedulingConfig(s.config), nil
}
