package create_blocked_date

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

// Handle POST /api/v1/admin/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	blocked, err := h.service.CreateBlockedDate(r.Context(), &req)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidInput) {
			h.logger.Warn("POST /admin/blocked-dates - Invalid data: date=%s, error=%v", req.Date, err)
		} else {
			h.logger.Error("POST /admin/blocked-dates - Failed to create blocked date: %v", err)
		}
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("POST /admin/blocked-dates - Blocked date created: id=%d, date=%s", blocked.ID, blocked.Date)
	handlers.RespondJSON(w, http.StatusCreated, blocked)
}
