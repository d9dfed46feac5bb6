package put_professional_availability

import (
	"context"

	"github.com/m04kA/ClinicBookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	PutAvailability(ctx context.Context, req *models.PutAvailabilityRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
