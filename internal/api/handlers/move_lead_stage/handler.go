package move_lead_stage

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/leads/models"
)

const (
	msgInvalidID          = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PATCH /api/v1/admin/leads/{id}/stage
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.MoveStageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/leads/{id}/stage - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lead, err := h.service.MoveStage(r.Context(), id, &req)
	if err != nil {
		h.logger.Warn("PATCH /admin/leads/{id}/stage - Failed to move lead: id=%d, stage=%s, error=%v",
			id, req.Stage, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("PATCH /admin/leads/{id}/stage - Lead moved: id=%d, stage=%s", id, lead.Stage)
	handlers.RespondJSON(w, http.StatusOK, lead)
}
