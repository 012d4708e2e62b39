package transition_status

import (
	"time"

	transitionStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_status"
)

// TransitionStatusRequest HTTP request model
type TransitionStatusRequest struct {
	Status        string  `json:"status"`                  // Approved, Rejected, Suggested, Completed, Seen
	SuggestedTime *string `json:"suggestedTime,omitempty"` // RFC3339, обязательно для Suggested
	AdminNotes    *string `json:"adminNotes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	StaffID         int64   `json:"staffId"`
	CustomerName    string  `json:"customerName"`
	PhoneNumber     string  `json:"phoneNumber"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Seen            bool    `json:"seen"`
	SuggestedTime   *string `json:"suggestedTime,omitempty"`
	AdminNotes      *string `json:"adminNotes,omitempty"`
	Rescheduled     bool    `json:"rescheduled"`
	ServiceTitle    string  `json:"serviceTitle,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionStatusRequest) ToUseCaseRequest(bookingID int64) (*transitionStatus.Request, error) {
	req := &transitionStatus.Request{
		BookingID:  bookingID,
		Status:     r.Status,
		AdminNotes: r.AdminNotes,
	}

	if r.SuggestedTime != nil {
		suggested, err := time.Parse(time.RFC3339, *r.SuggestedTime)
		if err != nil {
			return nil, err
		}
		req.SuggestedTime = &suggested
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *transitionStatus.Response) *BookingResponse {
	result := &BookingResponse{
		ID:              resp.ID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		CustomerName:    resp.CustomerName,
		PhoneNumber:     resp.PhoneNumber,
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Seen:            resp.Seen,
		AdminNotes:      resp.AdminNotes,
		Rescheduled:     resp.Rescheduled,
		ServiceTitle:    resp.ServiceTitle,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.SuggestedTime != nil {
		suggested := resp.SuggestedTime.Format(time.RFC3339)
		result.SuggestedTime = &suggested
	}

	return result
}
