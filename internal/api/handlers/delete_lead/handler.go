package delete_lead

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
)

const msgInvalidID = "некорректный ID заявки"

type Handler struct {
	service LeadService
	logger  Logger
}

func NewHandler(service LeadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/leads/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Warn("DELETE /admin/leads/{id} - Failed to delete lead: id=%d, error=%v", id, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("DELETE /admin/leads/{id} - Lead deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
