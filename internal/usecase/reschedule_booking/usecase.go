package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/appointment"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/internal/service/conflictguard"
	"github.com/m04kA/ClinicBookingService/pkg/txmanager"
)

// UseCase use case для переноса записи на другой слот
type UseCase struct {
	appointmentRepo AppointmentRepository
	clinicRepo      ClinicRepository
	guard           ConflictGuard
	reminders       ReminderService
	txManager       TransactionManager
	metrics         MetricsCollector
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clinicRepo ClinicRepository,
	guard ConflictGuard,
	reminders ReminderService,
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

// Execute выполняет перенос записи
// Отмена старой и создание новой записи выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: patient=%d, appointment=%d, start=%s",
		req.PatientID, req.AppointmentID, req.StartAt.UTC().Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем и проверяем исходную запись
	old, err := uc.getOwnedConfirmed(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Получаем клинику записи
	clinic, err := uc.clinicRepo.GetByID(ctx, old.ClinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			uc.logger.Error("RescheduleBooking: clinic id=%d of appointment id=%d not found", old.ClinicID, old.ID)
		} else {
			uc.logger.Error("RescheduleBooking: failed to get clinic id=%d: %v", old.ClinicID, err)
		}
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	// 4. Проверяем новый слот с тем же специалистом и специальностью
	slot, err := uc.guard.Check(ctx, conflictguard.CheckRequest{
		Clinic:         clinic,
		StartAt:        req.StartAt,
		ProfessionalID: old.ProfessionalID,
		SpecialtyID:    old.SpecialtyID,
	})
	if err != nil {
		return nil, mapGuardError(err)
	}

	// 5. Отменяем старую запись и создаем новую атомарно
	// Специалист берется из слота: у записи legacy режима его может не быть
	next := &domain.Appointment{
		ClinicID:              old.ClinicID,
		ProfessionalID:        slot.ProfessionalID,
		SpecialtyID:           old.SpecialtyID,
		PatientID:             old.PatientID,
		PatientFullName:       old.PatientFullName,
		PatientPhone:          old.PatientPhone,
		Note:                  old.Note,
		StartAt:               slot.StartAt,
		EndAt:                 slot.EndAt,
		Status:                domain.StatusConfirmed,
		PreviousAppointmentID: &old.ID,
	}

	var created *domain.Appointment
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем запись под блокировкой
		locked, err := uc.appointmentRepo.GetByID(txCtx, old.ID)
		if err != nil {
			return err
		}
		if !locked.IsConfirmed() {
			return ErrNotConfirmed
		}

		// 5.2. Отменяем старую запись
		if err := uc.appointmentRepo.MarkCancelled(txCtx, old.ID); err != nil {
			return err
		}

		// 5.3. Создаем новую запись
		created, err = uc.appointmentRepo.Create(txCtx, next)
		return err
	})
	if err != nil {
		return nil, uc.mapTxError(err, old)
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(KindReschedule)
	}
	uc.logger.Info("RescheduleBooking: appointment id=%d moved to id=%d", old.ID, created.ID)

	// 6. Перепланируем напоминания, ошибки не откатывают перенос
	if _, err := uc.reminders.CancelReminders(ctx, old.ID); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to cancel reminders of appointment id=%d: %v", old.ID, err)
	}
	if _, err := uc.reminders.ScheduleReminders(ctx, clinic, created); err != nil {
		uc.logger.Warn("RescheduleBooking: failed to schedule reminders for appointment id=%d: %v", created.ID, err)
	}

	return toResponse(created, old.ID, clinic), nil
}

func (uc *UseCase) getOwnedConfirmed(ctx context.Context, req *Request) (*domain.Appointment, error) {
	old, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleBooking: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if !old.BelongsToPatient(req.PatientID) {
		uc.logger.Warn("RescheduleBooking: appointment id=%d does not belong to patient=%d", old.ID, req.PatientID)
		return nil, ErrAccessDenied
	}

	if !old.IsConfirmed() {
		uc.logger.Warn("RescheduleBooking: appointment id=%d is %s", old.ID, old.Status)
		return nil, ErrNotConfirmed
	}

	return old, nil
}

// mapTxError различает гонку за слот, откат и ошибку отката
func (uc *UseCase) mapTxError(err error, old *domain.Appointment) error {
	switch {
	case errors.Is(err, txmanager.ErrRollback):
		uc.logger.Error("RescheduleBooking: DATA INTEGRITY: rollback failed for appointment id=%d: %v", old.ID, err)
		return fmt.Errorf("%w: %v", ErrPartialReschedule, err)
	case errors.Is(err, appointmentRepo.ErrDuplicateAppointment):
		uc.logger.Warn("RescheduleBooking: new slot taken concurrently for appointment id=%d", old.ID)
		if uc.metrics != nil {
			uc.metrics.IncBookingConflict(StageInsert)
		}
		return fmt.Errorf("%w: slot was booked concurrently", ErrSlotUnavailable)
	case errors.Is(err, ErrNotConfirmed), errors.Is(err, appointmentRepo.ErrNotConfirmed):
		uc.logger.Warn("RescheduleBooking: appointment id=%d was cancelled concurrently", old.ID)
		return ErrNotConfirmed
	default:
		uc.logger.Error("RescheduleBooking: transaction failed for appointment id=%d: %v", old.ID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func validateRequest(req *Request) error {
	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}
	return nil
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

func toResponse(a *domain.Appointment, previousID int64, clinic *domain.Clinic) *Response {
	return &Response{
		ID:                    a.ID,
		PreviousAppointmentID: previousID,
		ClinicID:              a.ClinicID,
		ProfessionalID:        a.ProfessionalID,
		SpecialtyID:           a.SpecialtyID,
		PatientID:             a.PatientID,
		PatientFullName:       a.PatientFullName,
		PatientPhone:          a.PatientPhone,
		Note:                  a.Note,
		StartAt:               a.StartAt,
		EndAt:                 a.EndAt,
		Status:                string(a.Status),
		Timezone:              clinic.Timezone,
		CreatedAt:             a.CreatedAt,
	}
}
