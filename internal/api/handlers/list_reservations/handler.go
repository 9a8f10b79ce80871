package list_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter = "некорректный фильтр"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations
// Query params: dateFrom, dateTo, status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Failed to list reservations: %v", err)
		handlers.RespondDomainError(w, err, msgInvalidFilter)
		return
	}

	h.logger.Info("GET /admin/reservations - Reservations retrieved successfully: count=%d", len(list.Reservations))
	handlers.RespondJSON(w, http.StatusOK, list)
}
