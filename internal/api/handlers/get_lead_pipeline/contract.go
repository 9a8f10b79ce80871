package get_lead_pipeline

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/leads/models"
)

type LeadService interface {
	Pipeline(ctx context.Context) (*models.PipelineResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
