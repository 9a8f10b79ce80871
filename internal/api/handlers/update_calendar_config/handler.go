package update_calendar_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/admin/calendar/config
// Полная замена настроек: дни, не переданные в запросе, становятся выходными
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/calendar/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := h.service.UpdateConfig(r.Context(), &req)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidConfig) {
			h.logger.Warn("PUT /admin/calendar/config - Invalid config: %v", err)
		} else {
			h.logger.Error("PUT /admin/calendar/config - Failed to update config: %v", err)
		}
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("PUT /admin/calendar/config - Config updated successfully: timezone=%s, slot=%d",
		cfg.Timezone, cfg.SlotDurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, cfg)
}
