package list_leads

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/leads/models"
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

// Handle GET /api/v1/admin/leads
// Query params: stage (необязательно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRequest{}
	if stage := r.URL.Query().Get("stage"); stage != "" {
		req.Stage = &stage
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /admin/leads - Failed to list leads: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
