package create_booking

import (
	"context"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/internal/service/conflictguard"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Clinic, error)
}

// ConflictGuard проверка, что слот существует и свободен
type ConflictGuard interface {
	Check(ctx context.Context, req conflictguard.CheckRequest) (*domain.Slot, error)
}

// ReminderScheduler планирование напоминаний по новой записи
type ReminderScheduler interface {
	ScheduleReminders(ctx context.Context, clinic *domain.Clinic, appt *domain.Appointment) (int, error)
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
