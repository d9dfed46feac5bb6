package conflictguard

import (
	"context"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/internal/service/availability"
)

// AvailabilityService источник свободных слотов
type AvailabilityService interface {
	ListAvailableSlots(ctx context.Context, q availability.Query) (*availability.Result, error)
}

// AppointmentRepository проверка занятости слота
type AppointmentRepository interface {
	ExistsConfirmed(ctx context.Context, clinicID int64, startAt time.Time, professionalID *int64) (bool, error)
}

// MetricsCollector приемник доменных метрик
type MetricsCollector interface {
	IncBookingConflict(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CheckRequest кандидат на запись
type CheckRequest struct {
	Clinic         *domain.Clinic
	StartAt        time.Time
	ProfessionalID *int64
	SpecialtyID    *int64
}
