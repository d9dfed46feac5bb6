package get_professional_schedule

import (
	"context"

	"github.com/m04kA/ClinicBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetProfessionalSchedule(ctx context.Context, clinicID, professionalID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
