package list_blocked_dates

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

type CalendarService interface {
	ListBlockedDates(ctx context.Context) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
