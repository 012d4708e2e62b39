package transition_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	transitionStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_status"
)

const (
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSuggestedTime = "некорректное предложенное время, ожидается RFC3339"
	msgNotFound             = "бронирование не найдено"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgSuggestedRequired    = "для статуса Suggested нужно указать предложенное время"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgTooLate              = "предложенное время уже прошло"
	msgSlotNotAvailable     = "сотрудник занят в выбранное время"
	msgInvalidInput         = "некорректные данные запроса"
	msgMissingStaffID       = "отсутствует ID сотрудника"
	msgUnknownStaff         = "сотрудник не найден"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	useCase TransitionStatusUseCase
	logger  Logger
}

func NewHandler(useCase TransitionStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %q", bookingIDStr)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем staffID из контекста (через middleware Auth)
	staffID, ok := middleware.GetStaffID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing staff ID")
		handlers.RespondUnauthorized(w, msgMissingStaffID)
		return
	}

	// Декодируем body
	var req TransitionStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid suggested time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSuggestedTime)
		return
	}
	useCaseReq.ActorID = staffID

	// Меняем статус
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, transitionStatus.ErrUnknownActor):
			h.logger.Warn("PATCH /bookings/{id}/status - Unknown staff: staff_id=%d", staffID)
			handlers.RespondUnauthorized(w, msgUnknownStaff)

		case errors.Is(err, transitionStatus.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, staff_id=%d", bookingID, staffID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d, status=%s", bookingID, req.Status)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionStatus.ErrSlotConflict):
			h.logger.Warn("PATCH /bookings/{id}/status - Staff busy: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, transitionStatus.ErrSuggestedTimeRequired):
			handlers.RespondBadRequest(w, msgSuggestedRequired)

		case errors.Is(err, transitionStatus.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, transitionStatus.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLate)

		case errors.Is(err, transitionStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status changed successfully: booking_id=%d, status=%s, seen=%t",
		bookingID, result.Status, result.Seen)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
