package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ConsultingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string   `json:"date"`
	Timezone            string   `json:"timezone"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	Slots               []string `json:"slots"` // "09:00", "10:00", ...
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		Timezone:            resp.Timezone,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: date}, nil
}
