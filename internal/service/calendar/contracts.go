package calendar

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
)

// CalendarRepository интерфейс репозитория настроек календаря
type CalendarRepository interface {
	Get(ctx context.Context) (*domain.CalendarConfig, error)
	Save(ctx context.Context, cfg *domain.CalendarConfig) (*domain.CalendarConfig, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	List(ctx context.Context) ([]*domain.BlockedDate, error)
	Create(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
}

// AppointmentTypeRepository интерфейс репозитория типов консультаций
type AppointmentTypeRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.AppointmentType, error)
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
	Create(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error)
	Update(ctx context.Context, at *domain.AppointmentType) (*domain.AppointmentType, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Publisher публикация событий об изменениях
type Publisher interface {
	Publish(ctx context.Context, e changefeed.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
