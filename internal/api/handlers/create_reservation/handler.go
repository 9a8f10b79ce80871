package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ConsultingService/internal/api/handlers"
	"github.com/m04kA/SMC-ConsultingService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	createReservation "github.com/m04kA/SMC-ConsultingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidForm        = "проверьте данные формы"
	msgSlotTaken          = "выбранное время уже занято, выберите другой слот"
	msgOutsideWindow      = "выбранное время недоступно для бронирования"
	msgInvalidConfig      = "настройки календаря некорректны"
	msgTemporaryFailure   = "не удалось сохранить бронирование, попробуйте позже"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Авторизация опциональна: анонимная заявка тоже принимается.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *string
	if id, ok := middleware.GetIdentity(r.Context()); ok && id.UserID != "" {
		userID = &id.UserID
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, handlers.RequestLanguage(r))
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date or time: %v", err)
		h.respondFailure(w, http.StatusUnprocessableEntity, msgInvalidDateTime, ReasonInvalidForm, req)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: date=%s, start=%s", req.Date, req.StartTime)
			h.respondFailure(w, http.StatusConflict, msgSlotTaken, ReasonSlotTaken, req)

		case errors.Is(err, createReservation.ErrOutsideBookingWindow):
			h.logger.Warn("POST /reservations - Outside booking window: date=%s, start=%s", req.Date, req.StartTime)
			h.respondFailure(w, http.StatusConflict, msgOutsideWindow, ReasonOutsideWindow, req)

		case errors.Is(err, domain.ErrValidationFailed):
			h.logger.Warn("POST /reservations - Validation failed: %v", err)
			h.respondFailure(w, http.StatusUnprocessableEntity, msgInvalidForm, ReasonInvalidForm, req)

		case errors.Is(err, domain.ErrConfigurationInvalid):
			h.logger.Error("POST /reservations - Calendar config invalid: %v", err)
			h.respondFailure(w, http.StatusBadRequest, msgInvalidConfig, ReasonInvalidConfig, req)

		case errors.Is(err, domain.ErrRemoteUnavailable):
			h.logger.Error("POST /reservations - Storage unavailable: %v", err)
			h.respondFailure(w, http.StatusServiceUnavailable, msgTemporaryFailure, ReasonTemporaryFailed, req)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, date=%s, start=%s",
		result.Reservation.ID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondFailure(w http.ResponseWriter, status int, msg, reason string, form CreateReservationRequest) {
	handlers.RespondJSON(w, status, FailureResponse{
		Error:     msg,
		Reason:    reason,
		Retryable: status == http.StatusServiceUnavailable,
		Form:      form,
	})
}
