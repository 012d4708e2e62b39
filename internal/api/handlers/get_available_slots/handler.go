package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidStaff        = "некорректный сотрудник, ожидается ID или any"
	msgPastDate            = "нельзя получить слоты на прошедшую дату"
	msgDateTooFar          = "дата слишком далеко в будущем"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "сотрудник не найден"
	msgInvalidRequestInput = "некорректные параметры запроса"
)

var (
	errInvalidDate      = errors.New("invalid date")
	errInvalidServiceID = errors.New("invalid service id")
	errInvalidStaff     = errors.New("invalid staff selection")
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: date (required, YYYY-MM-DD), serviceId (optional), staffId (optional, ID или any)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case
	useCaseReq, err := ToUseCaseRequest(dateStr, query.Get("serviceId"), query.Get("staffId"), h.loc)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid query: %v", err)
		switch {
		case errors.Is(err, errInvalidServiceID):
			handlers.RespondBadRequest(w, msgInvalidServiceID)
		case errors.Is(err, errInvalidStaff):
			handlers.RespondBadRequest(w, msgInvalidStaff)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Service not found: service_id=%d", useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /slots - Staff not found: staff=%s", useCaseReq.Staff)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /slots - Past date: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /slots - Date too far: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestInput)

		default:
			h.logger.Error("GET /slots - Failed to get slots: date=%s, service_id=%d, staff=%s, error=%v",
				dateStr, useCaseReq.ServiceID, useCaseReq.Staff, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /slots - Slots retrieved successfully: date=%s, staff=%s, slots_count=%d",
		dateStr, useCaseReq.Staff, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
