package leads

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
	"github.com/m04kA/SMC-ConsultingService/internal/integrations/notifier"
)

// LeadRepository интерфейс репозитория заявок
type LeadRepository interface {
	Create(ctx context.Context, l *domain.ContactLead) (*domain.ContactLead, error)
	GetByID(ctx context.Context, id int64) (*domain.ContactLead, error)
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.ContactLead, error)
	Update(ctx context.Context, l *domain.ContactLead) (*domain.ContactLead, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier отправка писем администраторам
type Notifier interface {
	Send(ctx context.Context, msg notifier.Message) error
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
