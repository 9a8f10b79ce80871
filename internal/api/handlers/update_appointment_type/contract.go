package update_appointment_type

import (
	"context"

	"github.com/m04kA/SMC-ConsultingService/internal/service/calendar/models"
)

type CalendarService interface {
	UpdateAppointmentType(ctx context.Context, id int64, req *models.AppointmentTypeRequest) (*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
