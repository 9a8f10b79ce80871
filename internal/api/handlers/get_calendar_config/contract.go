package get_calendar_config

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

type CalendarService interface {
	GetConfig(ctx context.Context) (*models.CalendarConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
