package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/internal/service/availability"
	"github.com/m04kA/ClinicBookingService/pkg/clinictime"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	clinicRepo   ClinicRepository
	availability AvailabilityService
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clinicRepo ClinicRepository,
	availability AvailabilityService,
	logger Logger,
) *UseCase {
	return &UseCase{
		clinicRepo:   clinicRepo,
		availability: availability,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: clinic=%s, from=%s, to=%s", req.ClinicSlug, req.From, req.To)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем клинику
	clinic, err := uc.clinicRepo.GetBySlug(ctx, req.ClinicSlug)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			uc.logger.Warn("GetAvailableSlots: clinic slug=%s not found", req.ClinicSlug)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get clinic slug=%s: %v", req.ClinicSlug, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	// 3. Даты периода относятся к календарю клиники
	loc, err := clinictime.LoadZone(clinic.Timezone)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: clinic id=%d has invalid timezone: %v", clinic.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	from, to, err := resolveWindow(req.From, req.To, loc)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date range: %v", err)
		return nil, err
	}

	// 4. Считаем свободные слоты
	result, err := uc.availability.ListAvailableSlots(ctx, availability.Query{
		Clinic:         clinic,
		From:           from,
		To:             to,
		ProfessionalID: req.ProfessionalID,
		SpecialtyID:    req.SpecialtyID,
	})
	if err != nil {
		return nil, uc.mapAvailabilityError(err)
	}

	slots := make([]Slot, 0, len(result.Slots))
	for _, s := range result.Slots {
		slots = append(slots, Slot{StartAt: s.StartAt, EndAt: s.EndAt, ProfessionalID: s.ProfessionalID})
	}

	uc.logger.Info("GetAvailableSlots: clinic id=%d, mode=%s, slots=%d", clinic.ID, result.Mode, len(slots))

	return &Response{
		ClinicID: clinic.ID,
		Slug:     clinic.Slug,
		Timezone: clinic.Timezone,
		Mode:     result.Mode,
		Slots:    slots,
	}, nil
}

func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrInvalidFilter):
		uc.logger.Warn("GetAvailableSlots: invalid filter: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	case errors.Is(err, availability.ErrInvalidWindow):
		uc.logger.Warn("GetAvailableSlots: invalid window: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	case errors.Is(err, availability.ErrConfiguration):
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
