package reminders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/pkg/ptr"
)

// Service планирует и отменяет напоминания о приеме
type Service struct {
	clinicRepo       ClinicRepository
	professionalRepo ProfessionalRepository
	reminderRepo     ReminderRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает сервис напоминаний
func NewService(
	clinicRepo ClinicRepository,
	professionalRepo ProfessionalRepository,
	reminderRepo ReminderRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		clinicRepo:       clinicRepo,
		professionalRepo: professionalRepo,
		reminderRepo:     reminderRepo,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// ScheduleReminders создает напоминания по правилам клиники
// Правила, чей момент срабатывания уже прошел, пропускаются. Возвращает число созданных напоминаний
func (s *Service) ScheduleReminders(ctx context.Context, clinic *domain.Clinic, appt *domain.Appointment) (int, error) {
	settings, err := s.clinicRepo.GetNotificationSettings(ctx, clinic.ID)
	if err != nil {
		if !errors.Is(err, clinicRepo.ErrSettingsNotFound) {
			s.logger.Error("ScheduleReminders: failed to get notification settings of clinic=%d: %v", clinic.ID, err)
			return 0, fmt.Errorf("%w: get notification settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultNotificationSettings(clinic.ID)
	}

	if !settings.RemindersEnabled {
		s.logger.Info("ScheduleReminders: reminders disabled for clinic=%d", clinic.ID)
		return 0, nil
	}

	payload := s.buildPayload(ctx, clinic, appt)
	now := s.timeProvider.Now()

	created := 0
	for _, rule := range settings.Rules {
		if !rule.Enabled {
			continue
		}

		fireAt := rule.FireAt(appt.StartAt)
		if !fireAt.After(now) {
			continue
		}

		rem := &domain.Reminder{
			ClinicID:       clinic.ID,
			PatientID:      appt.PatientID,
			AppointmentID:  appt.ID,
			RuleID:         rule.ID,
			Channel:        rule.Channel,
			ScheduledFor:   fireAt,
			Status:         domain.ReminderScheduled,
			IdempotencyKey: uuid.NewString(),
			Payload:        payload,
		}

		ok, err := s.reminderRepo.CreateIfNotExists(ctx, rem)
		if err != nil {
			s.logger.Error("ScheduleReminders: failed to create reminder rule=%s for appointment=%d: %v", rule.ID, appt.ID, err)
			return created, fmt.Errorf("%w: create reminder: %v", ErrInternal, err)
		}
		if ok {
			created++
		}
	}

	s.logger.Info("ScheduleReminders: appointment=%d reminders created=%d", appt.ID, created)
	return created, nil
}

// CancelReminders отменяет неотправленные напоминания записи
func (s *Service) CancelReminders(ctx context.Context, appointmentID int64) (int64, error) {
	n, err := s.reminderRepo.CancelPending(ctx, appointmentID)
	if err != nil {
		s.logger.Error("CancelReminders: failed to cancel reminders of appointment=%d: %v", appointmentID, err)
		return 0, fmt.Errorf("%w: cancel reminders: %v", ErrInternal, err)
	}

	s.logger.Info("CancelReminders: appointment=%d reminders canceled=%d", appointmentID, n)
	return n, nil
}

// buildPayload снимок данных записи на момент планирования
func (s *Service) buildPayload(ctx context.Context, clinic *domain.Clinic, appt *domain.Appointment) domain.ReminderPayload {
	payload := domain.ReminderPayload{
		ClinicName:    clinic.Name,
		PatientName:   appt.PatientFullName,
		PatientPhone:  appt.PatientPhone,
		ClinicPhone:   ptr.Deref(clinic.Phone),
		ClinicAddress: ptr.Deref(clinic.Address),
		Timezone:      clinic.Timezone,
		StartAt:       appt.StartAt,
	}

	if appt.ProfessionalID != nil {
		p, err := s.professionalRepo.GetByID(ctx, clinic.ID, *appt.ProfessionalID)
		if err != nil {
			// имя специалиста не обязательно для напоминания
			s.logger.Warn("ScheduleReminders: failed to get professional=%d: %v", *appt.ProfessionalID, err)
		} else {
			payload.ProfessionalName = p.DisplayName
		}
	}

	return payload
}
