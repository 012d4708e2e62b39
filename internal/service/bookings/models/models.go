package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTimeRange возвращается, когда from не раньше to
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	ViewerID int64      `json:"-"`                // Сотрудник из заголовка X-Staff-ID
	Status   *string    `json:"status,omitempty"` // Фильтр по статусу (опционально)
	From     *time.Time `json:"from,omitempty"`   // Начало периода (опционально)
	To       *time.Time `json:"to,omitempty"`     // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		From: r.From,
		To:   r.To,
	}

	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return filter, ErrInvalidTimeRange
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainBookingStatus конвертирует строку в рабочий статус (регистр не важен)
func ToDomainBookingStatus(raw string) (domain.BookingStatus, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range domain.WorkflowStatuses {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64      `json:"id"`
	ServiceID       int64      `json:"serviceId"`
	StaffID         int64      `json:"staffId"`
	CustomerName    string     `json:"customerName"`
	PhoneNumber     string     `json:"phoneNumber"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	Seen            bool       `json:"seen"`
	SuggestedTime   *time.Time `json:"suggestedTime,omitempty"`
	AdminNotes      *string    `json:"adminNotes,omitempty"`

	// Денормализованные данные
	ServiceTitle string `json:"serviceTitle"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		StaffID:         b.StaffID,
		CustomerName:    b.CustomerName,
		PhoneNumber:     b.PhoneNumber,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Seen:            b.Seen,
		SuggestedTime:   b.SuggestedTime,
		AdminNotes:      b.AdminNotes,
		ServiceTitle:    b.ServiceTitle,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}
