package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrValidationFailed)

	// ErrInvalidConfig сохраненная конфигурация календаря не проходит валидацию
	ErrInvalidConfig = fmt.Errorf("get_available_slots: %w", domain.ErrConfigurationInvalid)

	// ErrStorage возвращается, когда хранилище недоступно
	ErrStorage = fmt.Errorf("get_available_slots: %w", domain.ErrRemoteUnavailable)
)
