package get_available_slots

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// SlotResponse один слот сетки
type SlotResponse struct {
	Time      types.TimeString `json:"time"`
	Available bool             `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ServiceID       int64          `json:"serviceId,omitempty"`
	Staff           string         `json:"staff"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос к use case из query параметров
func ToUseCaseRequest(dateStr, serviceIDStr, staffStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	var serviceID int64
	if serviceIDStr != "" {
		serviceID, err = strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil || serviceID <= 0 {
			return nil, errInvalidServiceID
		}
	}

	staff, err := domain.ParseStaffSelection(staffStr)
	if err != nil {
		return nil, errInvalidStaff
	}

	return &getAvailableSlots.Request{
		Date:      date,
		ServiceID: serviceID,
		Staff:     staff,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{Time: s.Time, Available: s.Available})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		Staff:           resp.Staff.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
