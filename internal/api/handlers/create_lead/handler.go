package create_lead

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/leads"
	"github.com/m04kA/SMC-ConsultingService/internal/service/leads/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidForm        = "проверьте данные формы"
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

// Handle POST /api/v1/leads
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeadRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /leads - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	lead, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, leads.ErrInvalidInput) {
			h.logger.Warn("POST /leads - Validation failed: %v", err)
			handlers.RespondErrorWithData(w, http.StatusUnprocessableEntity, msgInvalidForm, req)
			return
		}
		h.logger.Error("POST /leads - Failed to create lead: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("POST /leads - Lead created successfully: lead_id=%d", lead.ID)
	handlers.RespondJSON(w, http.StatusCreated, lead)
}
