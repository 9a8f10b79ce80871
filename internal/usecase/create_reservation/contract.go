package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	"github.com/m04kA/SMC-ConsultingService/internal/usecase/get_available_slots"
)

// AvailabilityCalculator пересчет свободных слотов на дату
type AvailabilityCalculator interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// AppointmentTypeRepository интерфейс репозитория типов консультаций
type AppointmentTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
}

// Publisher публикация событий об изменениях
type Publisher interface {
	Publish(ctx context.Context, e changefeed.Event) error
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	IncReservationAttempt(outcome string)
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

type nopMetrics struct{}

func (nopMetrics) IncReservationAttempt(string) {}
