package reschedule_booking

import (
	"context"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/internal/service/conflictguard"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	MarkCancelled(ctx context.Context, id int64) error
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Clinic, error)
}

// ConflictGuard проверка, что слот существует и свободен
type ConflictGuard interface {
	Check(ctx context.Context, req conflictguard.CheckRequest) (*domain.Slot, error)
}

// ReminderService перепланирование напоминаний
type ReminderService interface {
	ScheduleReminders(ctx context.Context, clinic *domain.Clinic, appt *domain.Appointment) (int, error)
	CancelReminders(ctx context.Context, appointmentID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsCollector приемник доменных метрик
type MetricsCollector interface {
	IncBookingCreated(kind string)
	IncBookingConflict(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
