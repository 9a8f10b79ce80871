package cancel_reservation

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "требуется авторизация"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgAlreadyStarted       = "бронирование уже началось или прошло"
	msgCannotCancel         = "бронирование не может быть отменено"
	msgInvalidData          = "некорректные данные"
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

// Handle PATCH /api/v1/reservations/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// тело необязательно
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CancelByRequester(r.Context(), id, identity, req.Reason)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			msg = msgNotFound
		case errors.Is(err, reservations.ErrAccessDenied):
			msg = msgForbidden
		case errors.Is(err, reservations.ErrReservationStarted):
			msg = msgAlreadyStarted
		case errors.Is(err, reservations.ErrInvalidTransition):
			msg = msgCannotCancel
		case errors.Is(err, reservations.ErrInvalidInput):
			msg = msgInvalidData
		}

		status := handlers.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel: reservation_id=%d, error=%v", id, err)
			handlers.RespondDomainError(w, err, "")
			return
		}

		h.logger.Warn("PATCH /reservations/{id}/cancel - Rejected: reservation_id=%d, user_id=%s, error=%v",
			id, identity.UserID, err)
		// владелец получает текущее состояние записи
		if result != nil && result.Reservation != nil {
			handlers.RespondErrorWithData(w, status, msg, result.Reservation)
			return
		}
		handlers.RespondError(w, status, msg)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled successfully: reservation_id=%d, user_id=%s",
		id, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
