package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата (время суток игнорируется)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date                time.Time
	Slots               []types.TimeString // строго по возрастанию
	SlotDurationMinutes int
	Timezone            string

	// Config конфигурация, по которой считались слоты
	Config *domain.CalendarConfig
}
