package move_lead_stage

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/leads/models"
)

type LeadService interface {
	MoveStage(ctx context.Context, id int64, req *models.MoveStageRequest) (*models.LeadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
