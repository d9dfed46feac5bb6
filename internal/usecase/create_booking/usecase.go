package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/appointment"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/internal/service/conflictguard"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	appointmentRepo AppointmentRepository
	clinicRepo      ClinicRepository
	guard           ConflictGuard
	reminders       ReminderScheduler
	txManager       TransactionManager
	metrics         MetricsCollector
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clinicRepo ClinicRepository,
	guard ConflictGuard,
	reminders ReminderScheduler,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clinicRepo:      clinicRepo,
		guard:           guard,
		reminders:       reminders,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
//
// Guard проверяет слот до вставки, но не блокирует его. Если два запроса прошли
// проверку одновременно, второй упадет на уникальном индексе подтвержденных записей
// и получит ErrSlotUnavailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: clinic=%s, start=%s, professional=%v, specialty=%v",
		req.ClinicSlug, req.StartAt.UTC().Format(time.RFC3339), req.ProfessionalID, req.SpecialtyID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем клинику
	clinic, err := uc.clinicRepo.GetBySlug(ctx, req.ClinicSlug)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			uc.logger.Warn("CreateBooking: clinic slug=%s not found", req.ClinicSlug)
			return nil, ErrClinicNotFound
		}
		uc.logger.Error("CreateBooking: failed to get clinic slug=%s: %v", req.ClinicSlug, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	// 3. Проверяем, что слот есть в расписании и свободен
	slot, err := uc.guard.Check(ctx, conflictguard.CheckRequest{
		Clinic:         clinic,
		StartAt:        req.StartAt,
		ProfessionalID: req.ProfessionalID,
		SpecialtyID:    req.SpecialtyID,
	})
	if err != nil {
		return nil, mapGuardError(err)
	}

	// 4. Сохраняем запись
	appt := &domain.Appointment{
		ClinicID:        clinic.ID,
		ProfessionalID:  slot.ProfessionalID,
		SpecialtyID:     req.SpecialtyID,
		PatientID:       req.PatientID,
		PatientFullName: req.PatientFullName,
		PatientPhone:    req.PatientPhone,
		Note:            req.Note,
		StartAt:         slot.StartAt,
		EndAt:           slot.EndAt,
		Status:          domain.StatusConfirmed,
	}

	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = uc.appointmentRepo.Create(txCtx, appt)
		return err
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateAppointment) {
			uc.logger.Warn("CreateBooking: slot taken concurrently, clinic=%d start=%s",
				clinic.ID, slot.StartAt.UTC().Format(time.RFC3339))
			if uc.metrics != nil {
				uc.metrics.IncBookingConflict(StageInsert)
			}
			return nil, fmt.Errorf("%w: slot was booked concurrently", ErrSlotUnavailable)
		}
		uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(KindNew)
	}
	uc.logger.Info("CreateBooking: successfully created appointment id=%d", created.ID)

	// 5. Напоминания не влияют на результат записи
	if _, err := uc.reminders.ScheduleReminders(ctx, clinic, created); err != nil {
		uc.logger.Warn("CreateBooking: failed to schedule reminders for appointment id=%d: %v", created.ID, err)
	}

	return toResponse(created, clinic), nil
}

func mapGuardError(err error) error {
	switch {
	case errors.Is(err, conflictguard.ErrSlotUnavailable):
		return fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	case errors.Is(err, conflictguard.ErrInvalidFilter):
		return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	case errors.Is(err, conflictguard.ErrConfiguration):
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func toResponse(a *domain.Appointment, clinic *domain.Clinic) *Response {
	return &Response{
		ID:              a.ID,
		ClinicID:        a.ClinicID,
		ProfessionalID:  a.ProfessionalID,
		SpecialtyID:     a.SpecialtyID,
		PatientID:       a.PatientID,
		PatientFullName: a.PatientFullName,
		PatientPhone:    a.PatientPhone,
		Note:            a.Note,
		StartAt:         a.StartAt,
		EndAt:           a.EndAt,
		Status:          string(a.Status),
		Timezone:        clinic.Timezone,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
