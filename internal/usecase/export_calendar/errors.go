package export_calendar

import (
	"fmt"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

var (
	// ErrStorage возвращается, когда хранилище недоступно
	ErrStorage = fmt.Errorf("export_calendar: %w", domain.ErrRemoteUnavailable)
)
