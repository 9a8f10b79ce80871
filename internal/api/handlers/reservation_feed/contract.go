package reservation_feed

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/infra/changefeed"
)

type Subscriber interface {
	Subscribe(ctx context.Context) (*changefeed.Subscription, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
