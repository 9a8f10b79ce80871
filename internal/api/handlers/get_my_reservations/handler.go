package get_my_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступ запрещен"
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

// Handle GET /api/v1/me/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /me/reservations - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	list, err := h.service.ListMine(r.Context(), identity)
	if err != nil {
		h.logger.Warn("GET /me/reservations - Failed to list reservations: user_id=%s, error=%v", identity.UserID, err)
		handlers.RespondDomainError(w, err, msgForbidden)
		return
	}

	h.logger.Info("GET /me/reservations - Reservations retrieved successfully: user_id=%s, count=%d",
		identity.UserID, len(list.Reservations))
	handlers.RespondJSON(w, http.StatusOK, list)
}
