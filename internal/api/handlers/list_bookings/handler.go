package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
)

const (
	msgMissingStaffID = "отсутствует ID сотрудника"
	msgUnknownStaff   = "сотрудник не найден"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: status, from, to (RFC3339, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем staffID из контекста (через middleware Auth)
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	query := r.URL.Query()

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(staffID, query.Get("status"), query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования (сервис сам ограничит выборку по роли)
	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrUnknownViewer):
			h.logger.Warn("GET /bookings - Unknown staff: staff_id=%d", staffID)
			handlers.RespondUnauthorized(w, msgUnknownStaff)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: staff_id=%d, count=%d",
		staffID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
