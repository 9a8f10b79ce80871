package create_appointment_type

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

type CalendarService interface {
	CreateAppointmentType(ctx context.Context, req *models.AppointmentTypeRequest) (*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
