package calendar

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

var (
	// ErrInvalidConfig возвращается, когда конфигурация календаря нарушает инварианты
	ErrInvalidConfig = fmt.Errorf("calendar: %w", domain.ErrConfigurationInvalid)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("calendar: %w", domain.ErrValidationFailed)

	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = fmt.Errorf("blocked date not found: %w", domain.ErrNotFound)

	// ErrAppointmentTypeNotFound возвращается, когда тип консультации не найден
	ErrAppointmentTypeNotFound = fmt.Errorf("appointment type not found: %w", domain.ErrNotFound)

	// ErrInternal возвращается, когда хранилище недоступно
	ErrInternal = fmt.Errorf("calendar: %w", domain.ErrRemoteUnavailable)
)
