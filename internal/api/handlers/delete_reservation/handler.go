package delete_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
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

// Handle DELETE /api/v1/admin/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, reservations.ErrReservationNotFound) {
			h.logger.Warn("DELETE /admin/reservations/{id} - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /admin/reservations/{id} - Failed to delete: reservation_id=%d, error=%v", id, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("DELETE /admin/reservations/{id} - Reservation deleted: reservation_id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
