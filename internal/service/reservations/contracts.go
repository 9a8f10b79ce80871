package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

// CalendarRepository интерфейс репозитория настроек календаря
type CalendarRepository interface {
	Get(ctx context.Context) (*domain.CalendarConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка писем
type Notifier interface {
	Send(ctx context.Context, msg notifier.Message) error
}

// Publisher публикация событий об изменениях
type Publisher interface {
	Publish(ctx context.Context, e changefeed.Event) error
}

// Metrics счетчик переходов статусов
type Metrics interface {
	IncStatusTransition(from, to, actor string)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

type nopMetrics struct{}

func (nopMetrics) IncStatusTransition(string, string, string) {}
