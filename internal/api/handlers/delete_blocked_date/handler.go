package delete_blocked_date

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
)

const msgInvalidID = "некорректный ID"

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/blocked-dates/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), id); err != nil {
		h.logger.Warn("DELETE /admin/blocked-dates/{id} - Failed to delete: id=%d, error=%v", id, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("DELETE /admin/blocked-dates/{id} - Blocked date deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
