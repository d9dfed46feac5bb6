package availability

import (
	"context"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, clinicID, professionalID int64) (*domain.Professional, error)
	FindByClinic(ctx context.Context, clinicID int64, filter domain.ProfessionalsFilter) ([]*domain.Professional, error)
	CountByClinic(ctx context.Context, clinicID int64) (int, error)
	GetSpecialty(ctx context.Context, clinicID, specialtyID int64) (*domain.Specialty, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	FindActiveBlocksByProfessionals(ctx context.Context, clinicID int64, professionalIDs []int64) ([]*domain.WeeklyAvailabilityBlock, error)
	FindTimeOffByProfessionals(ctx context.Context, clinicID int64, professionalIDs []int64, fromDate, toDate string) ([]*domain.TimeOffException, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindConfirmed(ctx context.Context, clinicID int64, window domain.TimeWindow, professionalID *int64) ([]*domain.Appointment, error)
}

// MetricsCollector приемник доменных метрик
type MetricsCollector interface {
	AddSlotsGenerated(mode string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
