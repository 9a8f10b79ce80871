package get_lead_pipeline

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
)

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

// Handle GET /api/v1/admin/leads/pipeline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pipeline, err := h.service.Pipeline(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/leads/pipeline - Failed to build pipeline: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pipeline)
}
