package list_appointment_types

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

type AppointmentTypeService interface {
	ListAppointmentTypes(ctx context.Context, activeOnly bool, lang string) (*models.AppointmentTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
