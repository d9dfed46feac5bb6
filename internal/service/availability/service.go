package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	professionalRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/professional"
	"github.com/m04kA/ClinicBookingService/pkg/clinictime"
)

// Service считает свободные слоты клиники
// Результат это снимок на момент запроса, ничего не кэшируется
type Service struct {
	professionalRepo ProfessionalRepository
	scheduleRepo     ScheduleRepository
	appointmentRepo  AppointmentRepository
	metrics          MetricsCollector
	logger           Logger
}

// NewService создает сервис расчета слотов. metrics может быть nil
func NewService(
	professionalRepo ProfessionalRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	metrics MetricsCollector,
	logger Logger,
) *Service {
	return &Service{
		professionalRepo: professionalRepo,
		scheduleRepo:     scheduleRepo,
		appointmentRepo:  appointmentRepo,
		metrics:          metrics,
		logger:           logger,
	}
}

// ListAvailableSlots возвращает свободные слоты клиники в окне [From, To)
func (s *Service) ListAvailableSlots(ctx context.Context, q Query) (*Result, error) {
	if q.Clinic == nil {
		return nil, fmt.Errorf("%w: clinic is required", ErrInvalidFilter)
	}

	window := domain.TimeWindow{From: q.From, To: q.To}
	if window.IsEmpty() {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidWindow)
	}
	if window.To.Sub(window.From) > domain.MaxAvailabilityDays*24*time.Hour {
		return nil, fmt.Errorf("%w: window longer than %d days", ErrInvalidWindow, domain.MaxAvailabilityDays)
	}

	loc, err := clinictime.LoadZone(q.Clinic.Timezone)
	if err != nil {
		s.logger.Error("ListAvailableSlots: clinic=%d has invalid timezone %q: %v", q.Clinic.ID, q.Clinic.Timezone, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	professionals, err := s.resolveProfessionals(ctx, q)
	if err != nil {
		return nil, err
	}

	if len(professionals) == 0 && q.ProfessionalID == nil && q.SpecialtyID == nil {
		total, err := s.professionalRepo.CountByClinic(ctx, q.Clinic.ID)
		if err != nil {
			s.logger.Error("ListAvailableSlots: failed to count professionals of clinic=%d: %v", q.Clinic.ID, err)
			return nil, fmt.Errorf("%w: count professionals: %v", ErrInternal, err)
		}
		if total == 0 {
			return s.listLegacySlots(ctx, q.Clinic, window, loc)
		}
	}

	result := &Result{Slots: []domain.Slot{}, Mode: ModeProfessional, Location: loc}
	if len(professionals) == 0 {
		s.logger.Info("ListAvailableSlots: clinic=%d has no active professionals for the filter", q.Clinic.ID)
		return result, nil
	}

	ids := make([]int64, len(professionals))
	for i, p := range professionals {
		ids[i] = p.ID
	}

	fromDate := clinictime.DateOf(window.From, loc).String()
	toDate := clinictime.DateOf(window.To.Add(-time.Nanosecond), loc).String()

	var (
		blocks   []*domain.WeeklyAvailabilityBlock
		timeOff  []*domain.TimeOffException
		bookings []*domain.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blocks, err = s.scheduleRepo.FindActiveBlocksByProfessionals(gctx, q.Clinic.ID, ids)
		if err != nil {
			return fmt.Errorf("load weekly blocks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		timeOff, err = s.scheduleRepo.FindTimeOffByProfessionals(gctx, q.Clinic.ID, ids, fromDate, toDate)
		if err != nil {
			return fmt.Errorf("load time off: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookings, err = s.appointmentRepo.FindConfirmed(gctx, q.Clinic.ID, window, q.ProfessionalID)
		if err != nil {
			return fmt.Errorf("load booked appointments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("ListAvailableSlots: clinic=%d: %v", q.Clinic.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	configs := buildConfigs(professionals, blocks)
	result.Slots = GenerateSlots(window, configs, NewTimeOffIndex(timeOff), NewBookedSet(bookings), loc)

	if s.metrics != nil {
		s.metrics.AddSlotsGenerated(ModeProfessional, len(result.Slots))
	}

	s.logger.Info("ListAvailableSlots: clinic=%d professionals=%d window=[%s, %s) slots=%d",
		q.Clinic.ID, len(configs), window.From.Format(time.RFC3339), window.To.Format(time.RFC3339), len(result.Slots))

	return result, nil
}

// resolveProfessionals набор активных специалистов под фильтр
func (s *Service) resolveProfessionals(ctx context.Context, q Query) ([]*domain.Professional, error) {
	clinicID := q.Clinic.ID

	var specialty *domain.Specialty
	if q.SpecialtyID != nil {
		sp, err := s.professionalRepo.GetSpecialty(ctx, clinicID, *q.SpecialtyID)
		if err != nil {
			if errors.Is(err, professionalRepo.ErrSpecialtyNotFound) {
				s.logger.Warn("ListAvailableSlots: specialty=%d not found in clinic=%d", *q.SpecialtyID, clinicID)
				return nil, fmt.Errorf("%w: specialty %d", ErrInvalidFilter, *q.SpecialtyID)
			}
			s.logger.Error("ListAvailableSlots: failed to get specialty=%d: %v", *q.SpecialtyID, err)
			return nil, fmt.Errorf("%w: get specialty: %v", ErrInternal, err)
		}
		specialty = sp
	}

	if q.ProfessionalID != nil {
		p, err := s.professionalRepo.GetByID(ctx, clinicID, *q.ProfessionalID)
		if err != nil {
			if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
				s.logger.Warn("ListAvailableSlots: professional=%d not found in clinic=%d", *q.ProfessionalID, clinicID)
				return nil, fmt.Errorf("%w: professional %d", ErrInvalidFilter, *q.ProfessionalID)
			}
			s.logger.Error("ListAvailableSlots: failed to get professional=%d: %v", *q.ProfessionalID, err)
			return nil, fmt.Errorf("%w: get professional: %v", ErrInternal, err)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: professional %d is inactive", ErrInvalidFilter, p.ID)
		}
		if specialty != nil && !p.OffersSpecialty(specialty.ID) {
			return nil, fmt.Errorf("%w: professional %d does not offer specialty %d", ErrInvalidFilter, p.ID, specialty.ID)
		}
		return []*domain.Professional{p}, nil
	}

	filter := domain.ProfessionalsFilter{OnlyActive: true, SpecialtyID: q.SpecialtyID}
	professionals, err := s.professionalRepo.FindByClinic(ctx, clinicID, filter)
	if err != nil {
		s.logger.Error("ListAvailableSlots: failed to list professionals of clinic=%d: %v", clinicID, err)
		return nil, fmt.Errorf("%w: list professionals: %v", ErrInternal, err)
	}

	return professionals, nil
}

func (s *Service) listLegacySlots(ctx context.Context, clinic *domain.Clinic, window domain.TimeWindow, loc *time.Location) (*Result, error) {
	if err := clinic.ValidateSchedule(); err != nil {
		s.logger.Error("ListAvailableSlots: clinic=%d has invalid weekly schedule: %v", clinic.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	bookings, err := s.appointmentRepo.FindConfirmed(ctx, clinic.ID, window, nil)
	if err != nil {
		s.logger.Error("ListAvailableSlots: clinic=%d: load booked appointments: %v", clinic.ID, err)
		return nil, fmt.Errorf("%w: load booked appointments: %v", ErrInternal, err)
	}

	slots := GenerateLegacySlots(window, clinic.WeeklySchedule, clinic.LegacySlotMinutes(), NewBookedSet(bookings), loc)

	if s.metrics != nil {
		s.metrics.AddSlotsGenerated(ModeLegacy, len(slots))
	}

	s.logger.Info("ListAvailableSlots: clinic=%d legacy schedule window=[%s, %s) slots=%d",
		clinic.ID, window.From.Format(time.RFC3339), window.To.Format(time.RFC3339), len(slots))

	return &Result{Slots: slots, Mode: ModeLegacy, Location: loc}, nil
}

// buildConfigs группирует блоки по специалистам, сохраняя порядок специалистов
func buildConfigs(professionals []*domain.Professional, blocks []*domain.WeeklyAvailabilityBlock) []ProfessionalConfig {
	byProfessional := make(map[int64][]*domain.WeeklyAvailabilityBlock, len(professionals))
	for _, b := range blocks {
		byProfessional[b.ProfessionalID] = append(byProfessional[b.ProfessionalID], b)
	}

	configs := make([]ProfessionalConfig, 0, len(professionals))
	for _, p := range professionals {
		own := byProfessional[p.ID]
		if len(own) == 0 {
			continue
		}
		configs = append(configs, ProfessionalConfig{ProfessionalID: p.ID, Blocks: own})
	}

	return configs
}
