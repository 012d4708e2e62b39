package models

import (
	"slices"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"` // с учетом значения по умолчанию
	ImageURL        *string `json:"imageUrl,omitempty"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// StaffResponse ответ с данными сотрудника
type StaffResponse struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

// StaffListResponse ответ со списком сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// SettingsResponse настройки расписания салона
type SettingsResponse struct {
	OpeningTime            string `json:"openingTime"` // "09:00"
	ClosingTime            string `json:"closingTime"` // "18:00"
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
	DefaultDurationMinutes int    `json:"defaultDurationMinutes"`
	AdvanceBookingDays     int    `json:"advanceBookingDays"` // 0 = без ограничений
	Timezone               string `json:"timezone"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service, defaultDuration int) *ServiceResponse {
	duration := s.DurationMinutes
	if !s.HasValidDuration() {
		duration = defaultDuration
	}

	return &ServiceResponse{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: duration,
		ImageURL:        s.ImageURL,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service, defaultDuration int) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s, defaultDuration))
	}
	return resp
}

// FromDomainStaffList конвертирует список сотрудников в DTO по возрастанию id
func FromDomainStaffList(staff []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{
		Staff: make([]StaffResponse, 0, len(staff)),
	}
	for _, s := range staff {
		resp.Staff = append(resp.Staff, StaffResponse{
			ID:          s.ID,
			DisplayName: s.DisplayName,
			Role:        string(s.Role),
		})
	}
	slices.SortFunc(resp.Staff, func(a, b StaffResponse) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return resp
}

// FromSchedulingConfig конвертирует настройки расписания в DTO
func FromSchedulingConfig(c domain.SchedulingConfig) *SettingsResponse {
	return &SettingsResponse{
		OpeningTime:            c.OpeningTime.String(),
		ClosingTime:            c.ClosingTime.String(),
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		DefaultDurationMinutes: c.DefaultDurationMinutes,
		AdvanceBookingDays:     c.AdvanceBookingDays,
		Timezone:               c.Loc().String(),
	}
}
