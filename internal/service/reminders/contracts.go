package reminders

import (
	"context"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	GetNotificationSettings(ctx context.Context, clinicID int64) (*domain.NotificationSettings, error)
}

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	GetByID(ctx context.Context, clinicID, professionalID int64) (*domain.Professional, error)
}

// ReminderRepository интерфейс репозитория напоминаний
type ReminderRepository interface {
	CreateIfNotExists(ctx context.Context, rem *domain.Reminder) (bool, error)
	CancelPending(ctx context.Context, appointmentID int64) (int64, error)
	FindDueIDs(ctx context.Context, now time.Time, limit uint64) ([]int64, error)
	Lock(ctx context.Context, id int64) (*domain.Reminder, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
	MarkFailed(ctx context.Context, id int64, message string) error
}

// Sender доставка напоминания во внешний сервис уведомлений
type Sender interface {
	Send(ctx context.Context, rem *domain.Reminder) error
}

// MetricsCollector приемник доменных метрик
type MetricsCollector interface {
	IncReminderDispatched(channel, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
