package get_calendar_config

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

// Handle GET /api/v1/calendar/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetConfig(r.Context())
	if err != nil {
		h.logger.Error("GET /calendar/config - Failed to get config: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg)
}
