package create_appointment_type

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/admin/appointment-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AppointmentTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/appointment-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	at, err := h.service.CreateAppointmentType(r.Context(), &req)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidInput) {
			h.logger.Warn("POST /admin/appointment-types - Invalid data: %v", err)
		} else {
			h.logger.Error("POST /admin/appointment-types - Failed to create appointment type: %v", err)
		}
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("POST /admin/appointment-types - Appointment type created: id=%d", at.ID)
	handlers.RespondJSON(w, http.StatusCreated, at)
}
