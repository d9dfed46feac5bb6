package domain

import (
	"time"

	"github.com/m04kA/ClinicBookingService/pkg/types"
)

// WeeklyAvailabilityBlock is a recurring working interval of a professional on one weekday
type WeeklyAvailabilityBlock struct {
	ID             int64
	ClinicID       int64
	ProfessionalID int64
	Weekday        int // 0=Sunday..6=Saturday, clinic-local
	StartTime      types.TimeString
	EndTime        types.TimeString
	SlotMinutes    int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DurationMinutes returns the block length in minutes
func (b *WeeklyAvailabilityBlock) DurationMinutes() int {
	return b.EndTime.Minutes() - b.StartTime.Minutes()
}

// TimeOffException removes availability of a professional on a clinic-local date.
// Without StartTime/EndTime it covers the whole day.
type TimeOffException struct {
	ID             int64
	ClinicID       int64
	ProfessionalID int64
	Date           string // YYYY-MM-DD
	StartTime      *types.TimeString
	EndTime        *types.TimeString
	Reason         *string
	CreatedAt      time.Time
}

// IsWholeDay returns true if the exception blocks the entire date
func (t *TimeOffException) IsWholeDay() bool {
	return t.StartTime == nil || t.EndTime == nil
}

// ProfessionalSchedule агрегат расписания специалиста для админки
type ProfessionalSchedule struct {
	Professional *Professional
	Blocks       []*WeeklyAvailabilityBlock
	TimeOff      []*TimeOffException
}
