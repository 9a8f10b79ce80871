package get_lead

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

// Handle GET /api/v1/admin/leads/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	lead, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Warn("GET /admin/leads/{id} - Failed to get lead: id=%d, error=%v", id, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, lead)
}
