package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

var (
	// ErrSlotTaken возвращается, когда слот уже занят или отсутствует в сетке
	ErrSlotTaken = fmt.Errorf("create_reservation: slot is no longer available: %w", domain.ErrSlotUnavailable)

	// ErrOutsideBookingWindow возвращается, когда слот нарушает минимальное время до начала или горизонт
	ErrOutsideBookingWindow = fmt.Errorf("create_reservation: slot is outside the booking window: %w", domain.ErrSlotUnavailable)

	// ErrInvalidInput возвращается при некорректных данных заявителя
	ErrInvalidInput = fmt.Errorf("create_reservation: invalid input data: %w", domain.ErrValidationFailed)

	// ErrAppointmentTypeNotFound возвращается, когда тип консультации не найден
	ErrAppointmentTypeNotFound = fmt.Errorf("create_reservation: appointment type not found: %w", domain.ErrValidationFailed)

	// ErrAppointmentTypeInactive возвращается, когда тип консультации выключен
	ErrAppointmentTypeInactive = fmt.Errorf("create_reservation: appointment type is not active: %w", domain.ErrValidationFailed)

	// ErrInvalidConfig сохраненная конфигурация календаря не проходит валидацию
	ErrInvalidConfig = fmt.Errorf("create_reservation: %w", domain.ErrConfigurationInvalid)

	// ErrStorage возвращается, когда хранилище недоступно
	ErrStorage = fmt.Errorf("create_reservation: %w", domain.ErrRemoteUnavailable)
)

// Исходы попытки бронирования для метрик
const (
	outcomeCreated          = "created"
	outcomeSlotUnavailable  = "slot_unavailable"
	outcomeValidationFailed = "validation_failed"
	outcomeError            = "error"
)
