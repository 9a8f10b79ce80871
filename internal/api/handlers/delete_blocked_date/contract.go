package delete_blocked_date

import "context"

type CalendarService interface {
	DeleteBlockedDate(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
