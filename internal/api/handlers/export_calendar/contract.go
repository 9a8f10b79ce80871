package export_calendar

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/usecase/export_calendar"
)

type ExportUseCase interface {
	Execute(ctx context.Context, req *export_calendar.Request) (*export_calendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
