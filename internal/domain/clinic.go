package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/ClinicBookingService/pkg/types"
)

// ErrInvalidSchedule is returned when the legacy weekly schedule of a clinic is malformed
var ErrInvalidSchedule = errors.New("domain: invalid clinic weekly schedule")

// Clinic represents a tenant of the booking system
type Clinic struct {
	ID       int64
	Slug     string
	Name     string
	Phone    *string
	Address  *string
	Timezone string // IANA zone name, all calendar math for the clinic happens in it

	// Legacy clinic-level schedule, used only when the clinic has no professionals
	SlotDurationMinutes int
	WeeklySchedule      []DaySchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaySchedule represents the legacy opening hours of a clinic for one weekday
type DaySchedule struct {
	DayOfWeek int            `json:"dayOfWeek"` // 0=Sunday..6=Saturday
	Enabled   bool           `json:"enabled"`
	Intervals []TimeInterval `json:"intervals"`
}

// TimeInterval is a clinic-local [Start, End) range of wall-clock time
type TimeInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// ScheduleFor returns the enabled legacy schedule for the weekday, if any
func (c *Clinic) ScheduleFor(weekday int) (DaySchedule, bool) {
	for _, day := range c.WeeklySchedule {
		if day.DayOfWeek == weekday && day.Enabled {
			return day, true
		}
	}
	return DaySchedule{}, false
}

// ValidateSchedule checks weekdays and intervals of the legacy schedule
func (c *Clinic) ValidateSchedule() error {
	for _, day := range c.WeeklySchedule {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek %d", ErrInvalidSchedule, day.DayOfWeek)
		}
		for _, iv := range day.Intervals {
			if err := iv.Start.Validate(); err != nil {
				return fmt.Errorf("%w: day %d start: %v", ErrInvalidSchedule, day.DayOfWeek, err)
			}
			if err := iv.End.Validate(); err != nil {
				return fmt.Errorf("%w: day %d end: %v", ErrInvalidSchedule, day.DayOfWeek, err)
			}
			if !iv.Start.IsBefore(iv.End) {
				return fmt.Errorf("%w: day %d interval %s-%s is empty", ErrInvalidSchedule, day.DayOfWeek, iv.Start, iv.End)
			}
		}
	}
	return nil
}

// LegacySlotMinutes returns the clinic slot duration or the default one
func (c *Clinic) LegacySlotMinutes() int {
	if c.SlotDurationMinutes > 0 {
		return c.SlotDurationMinutes
	}
	return DefaultSlotDurationMinutes
}
