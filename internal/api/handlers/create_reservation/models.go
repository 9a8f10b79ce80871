package create_reservation

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ConsultingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

// CreateReservationRequest HTTP request model (форма бронирования)
type CreateReservationRequest struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             *string `json:"phone,omitempty"`
	AppointmentTypeID int64   `json:"appointmentTypeId"`
	Date              string  `json:"date"`      // "2026-10-19"
	StartTime         string  `json:"startTime"` // "14:00"
	Notes             *string `json:"notes,omitempty"`
	Language          string  `json:"language,omitempty"`
}

// FailureResponse ошибка бронирования вместе с отправленной формой,
// чтобы клиент мог показать ее заново
type FailureResponse struct {
	Error     string                   `json:"error"`
	Reason    string                   `json:"reason"`
	Retryable bool                     `json:"retryable,omitempty"`
	Form      CreateReservationRequest `json:"form"`
}

// Причины отказа
const (
	ReasonInvalidForm     = "invalid_form"
	ReasonSlotTaken       = "slot_taken"
	ReasonOutsideWindow   = "outside_booking_window"
	ReasonInvalidConfig   = "invalid_configuration"
	ReasonTemporaryFailed = "temporarily_unavailable"
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустые дата и время передаются как нулевые значения, их отклонит use case.
func (r *CreateReservationRequest) ToUseCaseRequest(userID *string, lang string) (*createReservation.Request, error) {
	req := &createReservation.Request{
		UserID:            userID,
		RequesterName:     r.Name,
		RequesterEmail:    r.Email,
		RequesterPhone:    r.Phone,
		AppointmentTypeID: r.AppointmentTypeID,
		Notes:             r.Notes,
		Language:          lang,
	}
	if r.Language != "" {
		req.Language = r.Language
	}

	if d := strings.TrimSpace(r.Date); d != "" {
		date, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}
	if s := strings.TrimSpace(r.StartTime); s != "" {
		startTime, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		req.StartTime = startTime
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *models.ReservationResponse {
	return models.FromDomainReservation(resp.Reservation, false)
}
