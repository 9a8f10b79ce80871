package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "бронирование не найдено"
	msgInvalidData          = "некорректные данные бронирования"
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

// Handle PATCH /api/v1/admin/reservations/{id}
// Пустая строка очищает поле, отсутствующее поле не меняется.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.UpdateDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	res, err := h.service.UpdateDetails(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /admin/reservations/{id} - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/reservations/{id} - Invalid data: reservation_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PATCH /admin/reservations/{id} - Failed to update: reservation_id=%d, error=%v", id, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id} - Reservation updated successfully: reservation_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, res)
}
