package update_appointment_type

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

const (
	msgInvalidID          = "некорректный ID"
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

// Handle PUT /api/v1/admin/appointment-types/{id}
// Тип не удаляется, а выключается через active=false: на него ссылаются старые бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.AppointmentTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/appointment-types/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	at, err := h.service.UpdateAppointmentType(r.Context(), id, &req)
	if err != nil {
		h.logger.Warn("PUT /admin/appointment-types/{id} - Failed to update: id=%d, error=%v", id, err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	h.logger.Info("PUT /admin/appointment-types/{id} - Appointment type updated: id=%d, active=%t", id, at.Active)
	handlers.RespondJSON(w, http.StatusOK, at)
}
