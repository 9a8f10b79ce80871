package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/domain"
	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
)

type ReservationService interface {
	Get(ctx context.Context, id int64, identity domain.Identity) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
