package conflictguard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/internal/service/availability"
	"github.com/m04kA/ClinicBookingService/pkg/clinictime"
)

const StageGuard = "guard"

// Guard проверяет, что запрошенный слот существует и свободен
//
// Проверка не атомарна с последующей вставкой: гонку двух бронирований
// закрывает уникальный индекс по подтвержденным записям.
type Guard struct {
	availability    AvailabilityService
	appointmentRepo AppointmentRepository
	metrics         MetricsCollector
	logger          Logger
}

// NewGuard создает guard. metrics может быть nil
func NewGuard(availability AvailabilityService, appointmentRepo AppointmentRepository, metrics MetricsCollector, logger Logger) *Guard {
	return &Guard{
		availability:    availability,
		appointmentRepo: appointmentRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Check возвращает найденный слот или ErrSlotUnavailable
func (g *Guard) Check(ctx context.Context, req CheckRequest) (*domain.Slot, error) {
	if req.Clinic == nil {
		return nil, fmt.Errorf("%w: clinic is required", ErrInvalidFilter)
	}

	loc, err := clinictime.LoadZone(req.Clinic.Timezone)
	if err != nil {
		g.logger.Error("Guard: clinic=%d has invalid timezone %q: %v", req.Clinic.ID, req.Clinic.Timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	from, to := clinictime.DayBounds(clinictime.DateOf(req.StartAt, loc), loc)

	result, err := g.availability.ListAvailableSlots(ctx, availability.Query{
		Clinic:         req.Clinic,
		From:           from,
		To:             to,
		ProfessionalID: req.ProfessionalID,
		SpecialtyID:    req.SpecialtyID,
	})
	if err != nil {
		return nil, mapAvailabilityError(err)
	}

	slot, ok := findSlot(result.Slots, req.StartAt, req.ProfessionalID)
	if !ok {
		g.conflict()
		g.logger.Warn("Guard: clinic=%d start=%s is not in the schedule", req.Clinic.ID, req.StartAt.UTC().Format(time.RFC3339))
		return nil, fmt.Errorf("%w: no such slot in the schedule", ErrSlotUnavailable)
	}

	taken, err := g.appointmentRepo.ExistsConfirmed(ctx, req.Clinic.ID, slot.StartAt, slot.ProfessionalID)
	if err != nil {
		g.logger.Error("Guard: failed to check existing appointment for clinic=%d: %v", req.Clinic.ID, err)
		return nil, fmt.Errorf("%w: check existing appointment: %v", ErrInternal, err)
	}
	if taken {
		g.conflict()
		g.logger.Warn("Guard: clinic=%d start=%s is already booked", req.Clinic.ID, req.StartAt.UTC().Format(time.RFC3339))
		return nil, fmt.Errorf("%w: slot already booked", ErrSlotUnavailable)
	}

	return &slot, nil
}

func (g *Guard) conflict() {
	if g.metrics != nil {
		g.metrics.IncBookingConflict(StageGuard)
	}
}

// findSlot ищет слот по началу и, если задан, по специалисту
func findSlot(slots []domain.Slot, startAt time.Time, professionalID *int64) (domain.Slot, bool) {
	for _, s := range slots {
		if !s.StartAt.Equal(startAt) {
			continue
		}
		if professionalID != nil && (s.ProfessionalID == nil || *s.ProfessionalID != *professionalID) {
			continue
		}
		return s, true
	}
	return domain.Slot{}, false
}

func mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrInvalidFilter):
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	case errors.Is(err, availability.ErrConfiguration):
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
