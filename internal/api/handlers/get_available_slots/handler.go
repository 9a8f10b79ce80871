package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ConsultingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidConfig = "настройки календаря некорректны"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: date=%s, error=%v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidConfig):
			h.logger.Error("GET /available-slots - Stored calendar config is invalid: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondDomainError(w, err, "")
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, slots_count=%d",
		dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
