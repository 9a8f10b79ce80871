package list_appointment_types

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
)

type Handler struct {
	service    AppointmentTypeService
	activeOnly bool
	logger     Logger
}

// NewHandler activeOnly=true для публичной формы, false для админки
func NewHandler(service AppointmentTypeService, activeOnly bool, logger Logger) *Handler {
	return &Handler{
		service:    service,
		activeOnly: activeOnly,
		logger:     logger,
	}
}

// Handle GET /api/v1/appointment-types, GET /api/v1/admin/appointment-types
// Query params: lang (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lang := handlers.RequestLanguage(r)

	list, err := h.service.ListAppointmentTypes(r.Context(), h.activeOnly, lang)
	if err != nil {
		h.logger.Error("GET /appointment-types - Failed to list appointment types: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("GET /appointment-types - Listed %d appointment types (active_only=%t, lang=%s)",
		len(list.AppointmentTypes), h.activeOnly, lang)
	handlers.RespondJSON(w, http.StatusOK, list)
}
