package schedule

import (
	"fmt"
	"strings"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/internal/service/schedule/models"
	"github.com/m04kA/ClinicBookingService/pkg/clinictime"
	"github.com/m04kA/ClinicBookingService/pkg/types"
)

// toDomainBlocks валидирует блоки и подставляет длительность слота клиники, если она не указана
func toDomainBlocks(inputs []models.BlockInput, clinicID, professionalID int64, defaultSlotMinutes int) ([]*domain.WeeklyAvailabilityBlock, error) {
	blocks := make([]*domain.WeeklyAvailabilityBlock, 0, len(inputs))

	for i, in := range inputs {
		if in.Weekday < 0 || in.Weekday > 6 {
			return nil, fmt.Errorf("%w: blocks[%d]: weekday must be 0..6", ErrInvalidInput, i)
		}

		start, err := types.NewTimeStringFromString(in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: blocks[%d]: startTime: %v", ErrInvalidInput, i, err)
		}
		end, err := types.NewTimeStringFromString(in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: blocks[%d]: endTime: %v", ErrInvalidInput, i, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: blocks[%d]: endTime must be after startTime", ErrInvalidInput, i)
		}

		slotMinutes := defaultSlotMinutes
		if in.SlotMinutes != nil {
			slotMinutes = *in.SlotMinutes
		}
		if slotMinutes < domain.MinSlotMinutes || slotMinutes > domain.MaxSlotMinutes {
			return nil, fmt.Errorf("%w: blocks[%d]: slotMinutes must be %d..%d",
				ErrInvalidInput, i, domain.MinSlotMinutes, domain.MaxSlotMinutes)
		}

		isActive := true
		if in.IsActive != nil {
			isActive = *in.IsActive
		}

		blocks = append(blocks, &domain.WeeklyAvailabilityBlock{
			ClinicID:       clinicID,
			ProfessionalID: professionalID,
			Weekday:        in.Weekday,
			StartTime:      start,
			EndTime:        end,
			SlotMinutes:    slotMinutes,
			IsActive:       isActive,
		})
	}

	return blocks, nil
}

// toDomainTimeOff валидирует исключение: оба времени или ни одного
func toDomainTimeOff(req *models.CreateTimeOffRequest) (*domain.TimeOffException, error) {
	date, err := clinictime.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}

	t := &domain.TimeOffException{
		ClinicID:       req.ClinicID,
		ProfessionalID: req.ProfessionalID,
		Date:           date.String(),
	}

	hasStart := req.StartTime != nil && *req.StartTime != ""
	hasEnd := req.EndTime != nil && *req.EndTime != ""
	if hasStart != hasEnd {
		return nil, fmt.Errorf("%w: startTime and endTime must be given together", ErrInvalidInput)
	}

	if hasStart {
		start, err := types.NewTimeStringFromString(*req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(*req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
		}
		t.StartTime = &start
		t.EndTime = &end
	}

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if len([]rune(reason)) > domain.MaxTimeOffReasonLength {
			return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxTimeOffReasonLength)
		}
		if reason != "" {
			t.Reason = &reason
		}
	}

	return t, nil
}
