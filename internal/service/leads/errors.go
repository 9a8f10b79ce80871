package leads

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

var (
	// ErrLeadNotFound возвращается, когда заявка не найдена
	ErrLeadNotFound = fmt.Errorf("lead not found: %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных данных формы или этапа
	ErrInvalidInput = fmt.Errorf("leads: %w", domain.ErrValidationFailed)

	// ErrInternal возвращается, когда хранилище недоступно
	ErrInternal = fmt.Errorf("leads: %w", domain.ErrRemoteUnavailable)
)

// Ограничения формы обратной связи
const (
	MaxSubjectLength = 200
	MaxPhoneLength   = 32
)
