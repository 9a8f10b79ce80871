package get_reservation_board

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/reservations/models"
)

type ReservationService interface {
	Board(ctx context.Context, req *models.ListRequest) (*models.BoardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
