package jobs

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/usecase/export_calendar"
)

// ReminderSender рассылка напоминаний на следующий день
type ReminderSender interface {
	SendTomorrowReminders(ctx context.Context) (int, error)
}

// CalendarExporter сборка iCalendar-ленты
type CalendarExporter interface {
	Execute(ctx context.Context, req *export_calendar.Request) (*export_calendar.Response, error)
}

// BlobStore хранилище опубликованной ленты
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, payload []byte) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
