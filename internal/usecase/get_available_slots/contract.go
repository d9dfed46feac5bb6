package get_available_slots

import (
	"context"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/internal/service/availability"
)

// ClinicRepository интерфейс репозитория клиник
type ClinicRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Clinic, error)
}

// AvailabilityService расчет свободных слотов
type AvailabilityService interface {
	ListAvailableSlots(ctx context.Context, q availability.Query) (*availability.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
