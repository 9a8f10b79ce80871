package export_calendar

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/usecase/export_calendar"
)

const (
	msgInvalidDays = "параметр days должен быть целым числом от 1 до 366"
	maxDays        = 366
)

type Handler struct {
	useCase ExportUseCase
	logger  Logger
}

func NewHandler(useCase ExportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar.ics
// Query params: days (необязательно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &export_calendar.Request{}
	if s := r.URL.Query().Get("days"); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil || days < 1 || days > maxDays {
			h.logger.Warn("GET /admin/calendar.ics - Invalid days: %q", s)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		req.Days = days
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /admin/calendar.ics - Failed to export: %v", err)
		handlers.RespondDomainError(w, err, "")
		return
	}

	w.Header().Set("Content-Type", export_calendar.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="consultations.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.Content); err != nil {
		h.logger.Warn("GET /admin/calendar.ics - Write failed: %v", err)
	}
}
