package list_bookings

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(staffID int64, statusStr, fromStr, toStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		ViewerID: staffID,
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return nil, err
	}
	req.From = from

	to, err := parseTime(toStr)
	if err != nil {
		return nil, err
	}
	req.To = to

	return req, nil
}

func parseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
