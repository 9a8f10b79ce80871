package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/pkg/types"
)

// Request форма бронирования
type Request struct {
	UserID *string // subject авторизованного заявителя (опционально)

	RequesterName  string
	RequesterEmail string
	RequesterPhone *string

	AppointmentTypeID int64
	Date              time.Time        // Дата (время суток игнорируется)
	StartTime         types.TimeString // Время начала слота, например "14:00"
	Notes             *string
	Language          string // язык для названия услуги
}

// Response созданное бронирование
type Response struct {
	Reservation *domain.Reservation
}
