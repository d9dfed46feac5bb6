package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	clinicRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/clinic"
	professionalRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/professional"
	scheduleRepo "github.com/m04kA/ClinicBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule/models"
)

// Service сервис управления расписанием специалистов
type Service struct {
	professionalRepo ProfessionalRepository
	clinicRepo       ClinicRepository
	scheduleRepo     ScheduleRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	professionalRepo ProfessionalRepository,
	clinicRepo ClinicRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		professionalRepo: professionalRepo,
		clinicRepo:       clinicRepo,
		scheduleRepo:     scheduleRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetProfessionalSchedule получает недельные блоки и исключения специалиста
func (s *Service) GetProfessionalSchedule(ctx context.Context, clinicID, professionalID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetProfessionalSchedule: fetching schedule of professional=%d in clinic=%d", professionalID, clinicID)

	professional, err := s.getProfessional(ctx, "GetProfessionalSchedule", clinicID, professionalID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.scheduleRepo.FindBlocksByProfessional(ctx, clinicID, professionalID)
	if err != nil {
		s.logger.Error("GetProfessionalSchedule: failed to get blocks of professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalSchedule - repository error: %v", ErrInternal, err)
	}

	timeOff, err := s.scheduleRepo.FindTimeOffByProfessional(ctx, clinicID, professionalID)
	if err != nil {
		s.logger.Error("GetProfessionalSchedule: failed to get time off of professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: GetProfessionalSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProfessionalSchedule: professional=%d has %d blocks and %d time off entries",
		professionalID, len(blocks), len(timeOff))

	return models.FromDomainSchedule(&domain.ProfessionalSchedule{
		Professional: professional,
		Blocks:       blocks,
		TimeOff:      timeOff,
	}), nil
}

// PutAvailability полностью заменяет недельное расписание специалиста
// Удаление и вставка выполняются в одной транзакции, читатели не видят пустого расписания
func (s *Service) PutAvailability(ctx context.Context, req *models.PutAvailabilityRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("PutAvailability: replacing %d blocks of professional=%d in clinic=%d",
		len(req.Blocks), req.ProfessionalID, req.ClinicID)

	clinic, err := s.clinicRepo.GetByID(ctx, req.ClinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrClinicNotFound) {
			s.logger.Warn("PutAvailability: clinic id=%d not found", req.ClinicID)
			return nil, ErrClinicNotFound
		}
		s.logger.Error("PutAvailability: failed to get clinic id=%d: %v", req.ClinicID, err)
		return nil, fmt.Errorf("%w: failed to get clinic: %v", ErrInternal, err)
	}

	professional, err := s.getProfessional(ctx, "PutAvailability", req.ClinicID, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	blocks, err := toDomainBlocks(req.Blocks, req.ClinicID, req.ProfessionalID, clinic.LegacySlotMinutes())
	if err != nil {
		s.logger.Warn("PutAvailability: validation failed: %v", err)
		return nil, err
	}

	var saved []*domain.WeeklyAvailabilityBlock
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.ReplaceBlocks(ctx, req.ClinicID, req.ProfessionalID, blocks); err != nil {
			return err
		}

		var err error
		saved, err = s.scheduleRepo.FindBlocksByProfessional(ctx, req.ClinicID, req.ProfessionalID)
		return err
	})
	if err != nil {
		s.logger.Error("PutAvailability: transaction failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: PutAvailability - repository error: %v", ErrInternal, err)
	}

	timeOff, err := s.scheduleRepo.FindTimeOffByProfessional(ctx, req.ClinicID, req.ProfessionalID)
	if err != nil {
		s.logger.Error("PutAvailability: failed to get time off of professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: PutAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("PutAvailability: successfully saved %d blocks of professional=%d", len(saved), req.ProfessionalID)

	return models.FromDomainSchedule(&domain.ProfessionalSchedule{
		Professional: professional,
		Blocks:       saved,
		TimeOff:      timeOff,
	}), nil
}

// CreateTimeOff создает исключение расписания на дату клиники
func (s *Service) CreateTimeOff(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("CreateTimeOff: creating time off on %s for professional=%d in clinic=%d",
		req.Date, req.ProfessionalID, req.ClinicID)

	timeOff, err := toDomainTimeOff(req)
	if err != nil {
		s.logger.Warn("CreateTimeOff: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.getProfessional(ctx, "CreateTimeOff", req.ClinicID, req.ProfessionalID); err != nil {
		return nil, err
	}

	created, err := s.scheduleRepo.CreateTimeOff(ctx, timeOff)
	if err != nil {
		s.logger.Error("CreateTimeOff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeOff: successfully created time off id=%d", created.ID)
	resp := models.FromDomainTimeOff(created)
	return &resp, nil
}

// DeleteTimeOff удаляет исключение расписания
func (s *Service) DeleteTimeOff(ctx context.Context, clinicID, professionalID, timeOffID int64) error {
	s.logger.Info("DeleteTimeOff: deleting time off id=%d of professional=%d in clinic=%d", timeOffID, professionalID, clinicID)

	if err := s.scheduleRepo.DeleteTimeOff(ctx, clinicID, professionalID, timeOffID); err != nil {
		if errors.Is(err, scheduleRepo.ErrTimeOffNotFound) {
			s.logger.Warn("DeleteTimeOff: time off id=%d not found", timeOffID)
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error for time off id=%d: %v", timeOffID, err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTimeOff: successfully deleted time off id=%d", timeOffID)
	return nil
}

// Вспомогательные методы

func (s *Service) getProfessional(ctx context.Context, op string, clinicID, professionalID int64) (*domain.Professional, error) {
	professional, err := s.professionalRepo.GetByID(ctx, clinicID, professionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			s.logger.Warn("%s: professional id=%d not found in clinic=%d", op, professionalID, clinicID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get professional id=%d: %v", op, professionalID, err)
		return nil, fmt.Errorf("%w: %s - failed to get professional: %v", ErrInternal, op, err)
	}
	return professional, nil
}
