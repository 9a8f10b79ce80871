package get_reservation_board

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers/list_reservations"
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

// Handle GET /api/v1/admin/reservations/board
// Query params: dateFrom, dateTo
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := list_reservations.ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/reservations/board - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	board, err := h.service.Board(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /admin/reservations/board - Failed to build board: %v", err)
		handlers.RespondDomainError(w, err, msgInvalidFilter)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, board)
}
