package cancel_reservation

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
)

type ReservationService interface {
	CancelByRequester(ctx context.Context, id int64, identity domain.Identity, reason *string) (*models.TransitionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
