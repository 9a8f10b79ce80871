package update_lead

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/leads/models"
)

type LeadService interface {
	UpdateEstimatedValue(ctx context.Context, id int64, req *models.UpdateEstimatedValueRequest) (*models.LeadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
