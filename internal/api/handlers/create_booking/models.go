package create_booking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
)

var (
	errInvalidStaff     = errors.New("invalid staff selection")
	errInvalidStartTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID    int64           `json:"serviceId"`
	StaffID      json.RawMessage `json:"staffId,omitempty"` // число, "any" или отсутствует
	CustomerName string          `json:"customerName"`
	PhoneNumber  string          `json:"phoneNumber"`
	StartTime    string          `json:"startTime"` // RFC3339, "2026-03-02T10:00:00+03:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	ServiceID       int64  `json:"serviceId"`
	StaffID         int64  `json:"staffId"`
	AutoAssigned    bool   `json:"autoAssigned"`
	CustomerName    string `json:"customerName"`
	PhoneNumber     string `json:"phoneNumber"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Seen            bool   `json:"seen"`
	ServiceTitle    string `json:"serviceTitle,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	staff, err := parseStaff(r.StaffID)
	if err != nil {
		return nil, err
	}

	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidStartTime, err)
	}

	return &createBooking.Request{
		ServiceID:    r.ServiceID,
		Staff:        staff,
		CustomerName: r.CustomerName,
		PhoneNumber:  r.PhoneNumber,
		StartTime:    startTime,
	}, nil
}

// parseStaff принимает ID числом или строкой, а также "any"
func parseStaff(raw json.RawMessage) (domain.StaffSelection, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.AnyStaff(), nil
	}

	var value string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &value); err != nil {
			return domain.StaffSelection{}, errInvalidStaff
		}
	} else {
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return domain.StaffSelection{}, errInvalidStaff
		}
		value = strconv.FormatInt(id, 10)
	}

	staff, err := domain.ParseStaffSelection(value)
	if err != nil {
		return domain.StaffSelection{}, errInvalidStaff
	}
	return staff, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		AutoAssigned:    resp.AutoAssigned,
		CustomerName:    resp.CustomerName,
		PhoneNumber:     resp.PhoneNumber,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Seen:            resp.Seen,
		ServiceTitle:    resp.ServiceTitle,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
