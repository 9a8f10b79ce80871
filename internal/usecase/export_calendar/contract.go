package export_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// CalendarRepository интерфейс репозитория настроек календаря
type CalendarRepository interface {
	Get(ctx context.Context) (*domain.CalendarConfig, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
