package schedule

import (
	"context"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, clinicID, professionalID int64) (*domain.Professional, error)
}

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	FindBlocksByProfessional(ctx context.Context, clinicID, professionalID int64) ([]*domain.WeeklyAvailabilityBlock, error)
	ReplaceBlocks(ctx context.Context, clinicID, professionalID int64, blocks []*domain.WeeklyAvailabilityBlock) error
	FindTimeOffByProfessional(ctx context.Context, clinicID, professionalID int64) ([]*domain.TimeOffException, error)
	CreateTimeOff(ctx context.Context, t *domain.TimeOffException) (*domain.TimeOffException, error)
	DeleteTimeOff(ctx context.Context, clinicID, professionalID, timeOffID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
