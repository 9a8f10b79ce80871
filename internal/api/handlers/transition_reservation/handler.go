package transition_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgInvalidData          = "некорректные данные"
	msgForbidden            = "доступ запрещен"
	msgTemporaryFailure     = "статус не изменен, попробуйте позже"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/reservations/{id}/status
// Используется таблицей и канбан-доской. При отказе в data возвращается
// актуальное состояние записи, клиент заменяет им оптимистичное обновление.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/status - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Transition(r.Context(), id, identity, &req)
	if err != nil {
		var (
			status = handlers.StatusFor(err)
			msg    string
		)
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			msg = msgNotFound
		case errors.Is(err, reservations.ErrInvalidTransition), errors.Is(err, reservations.ErrReservationStarted):
			msg = msgInvalidTransition
		case errors.Is(err, reservations.ErrInvalidInput):
			msg = msgInvalidData
		case errors.Is(err, reservations.ErrAccessDenied):
			msg = msgForbidden
		case status == http.StatusServiceUnavailable:
			msg = msgTemporaryFailure
		default:
			h.logger.Error("PATCH /admin/reservations/{id}/status - Failed to change status: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
			return
		}

		h.logger.Warn("PATCH /admin/reservations/{id}/status - Rejected: reservation_id=%d, status=%s, error=%v",
			id, req.Status, err)
		var truth interface{}
		if result != nil && result.Reservation != nil {
			truth = result.Reservation
		}
		handlers.RespondErrorWithData(w, status, msg, truth)
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id}/status - Status changed: reservation_id=%d, status=%s, warnings=%v",
		id, req.Status, result.Warnings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
