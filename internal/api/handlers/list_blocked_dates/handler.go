package list_blocked_dates

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
)

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

// Handle GET /api/v1/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListBlockedDates(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/blocked-dates - Failed to list blocked dates: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
