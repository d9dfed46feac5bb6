package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	appointmentRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/appointment"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	"github.com/m04kA/ClinicBookingService/internal/service/appointments/models"
	"github.com/m04kA/ClinicBookingService/pkg/clinictime"
)

// Service сервис для работы с записями на прием
type Service struct {
	appointmentRepo AppointmentRepository
	clinicRepo      ClinicRepository
	reminders       ReminderCanceller
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	clinicRepo ClinicRepository,
	reminders ReminderCanceller,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		clinicRepo:      clinicRepo,
		reminders:       reminders,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Пациент видит только свои записи, клиника только записи клиники
func (s *Service) GetByID(ctx context.Context, id int64, requester models.Requester) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(appt, requester); err != nil {
		s.logger.Warn("GetByID: access denied to appointment id=%d", id)
		return nil, err
	}

	return models.FromDomainAppointment(appt), nil
}

// GetPatientAppointments получает историю записей пациента
// Опционально фильтрует по статусу
func (s *Service) GetPatientAppointments(ctx context.Context, req *models.GetPatientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetPatientAppointments: fetching appointments for patient=%d, status=%v", req.PatientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientAppointments: invalid status=%s for patient=%d", *req.Status, req.PatientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	list, err := s.appointmentRepo.GetByPatientID(ctx, req.PatientID, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientAppointments: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientAppointments: successfully fetched %d appointments for patient=%d", len(list), req.PatientID)
	return models.FromDomainAppointmentList(list), nil
}

// GetClinicAppointments получает записи клиники за период [From, To) в датах клиники
// Поддерживает фильтр по специалисту и поиск по телефону пациента
func (s *Service) GetClinicAppointments(ctx context.Context, req *models.GetClinicAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetClinicAppointments: fetching appointments for clinic=%d, period=%s to %s", req.ClinicID, req.From, req.To)
	if req.ProfessionalID != nil {
		logMsg += fmt.Sprintf(", professional=%d", *req.ProfessionalID)
	}
	if req.Query != "" {
		logMsg += fmt.Sprintf(", q=%s", req.Query)
	}
	s.logger.Info(logMsg)

	clinic, err := s.clinicRepo.GetByID(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			s.logger.Warn("GetClinicAppointments: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		s.logger.Error("GetClinicAppointments: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: GetClinicAppointments - failed to get clinic: %v", ErrInternal, err)
	}

	loc, err := clinictime.LoadZone(clinic.Timezone)
	if err != nil {
		s.logger.Error("GetClinicAppointments: clinic id=%d has invalid timezone %q", clinic.ID, clinic.Timezone)
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	fromDate, err := clinictime.ParseDate(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrInvalidInput, err)
	}
	toDate, err := clinictime.ParseDate(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: to: %v", ErrInvalidInput, err)
	}
	if !fromDate.Before(toDate) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	from := fromDate.Start(loc)
	to := toDate.Start(loc)

	filter := domain.AppointmentsFilter{
		ClinicID:       clinic.ID,
		From:           &from,
		To:             &to,
		ProfessionalID: req.ProfessionalID,
		PhoneQuery:     strings.TrimSpace(req.Query),
	}

	list, err := s.appointmentRepo.GetByClinicWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClinicAppointments: repository error for clinic=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: GetClinicAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClinicAppointments: successfully fetched %d appointments for clinic=%d", len(list), req.ClinicID)
	return models.FromDomainAppointmentList(list), nil
}

// Cancel отменяет запись
// Пациент может отменить только свою запись, клиника любую свою запись
// Неотправленные напоминания отменяются после отмены записи, их ошибка не откатывает отмену
func (s *Service) Cancel(ctx context.Context, appointmentID int64, requester models.Requester) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", appointmentID)

	appt, err := s.getAppointment(ctx, "Cancel", appointmentID)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(appt, requester); err != nil {
		s.logger.Warn("Cancel: access denied to appointment id=%d", appointmentID)
		return nil, err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.MarkCancelled(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrNotConfirmed) {
			s.logger.Warn("Cancel: appointment id=%d was cancelled concurrently", appointmentID)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if _, err := s.reminders.CancelReminders(ctx, appointmentID); err != nil {
		s.logger.Warn("Cancel: failed to cancel reminders of appointment id=%d: %v", appointmentID, err)
	}

	appt.Status = domain.StatusCancelled
	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return models.FromDomainAppointment(appt), nil
}

// Вспомогательные методы

func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// checkAccess пациент владеет записью или запрос от клиники записи
func checkAccess(appt *domain.Appointment, requester models.Requester) error {
	if requester.PatientID != nil && appt.BelongsToPatient(*requester.PatientID) {
		return nil
	}
	if requester.ClinicID != nil && *requester.ClinicID == appt.ClinicID {
		return nil
	}
	return ErrAccessDenied
}
