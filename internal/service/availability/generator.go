package availability

import (
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
	"github.com/m04kA/ClinicBookingService/pkg/clinictime"
)

// GenerateSlots раскладывает недельное расписание специалистов на слоты внутри окна
//
// Для каждого календарного дня клиники в окне и каждого специалиста (в порядке configs)
// берутся блоки на день недели и шагаются по SlotMinutes без неполного хвоста.
// Кандидат отбрасывается, если его начало вне окна, если он пересекается с исключением
// специалиста на эту дату или если ключ (начало, специалист) уже занят.
// Пересекающиеся блоки дают пересекающиеся слоты, дедупликации нет.
func GenerateSlots(
	window domain.TimeWindow,
	configs []ProfessionalConfig,
	timeOff TimeOffIndex,
	booked BookedSet,
	loc *time.Location,
) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if window.IsEmpty() {
		return slots
	}

	forEachDay(window, loc, func(day clinictime.Date) {
		weekday := int(day.Weekday())
		dateKey := day.String()

		for _, cfg := range configs {
			professionalID := cfg.ProfessionalID
			offList := timeOff.get(professionalID, dateKey)

			for _, block := range cfg.Blocks {
				if block.Weekday != weekday || block.SlotMinutes <= 0 {
					continue
				}

				startMin := block.StartTime.Minutes()
				endMin := block.EndTime.Minutes()

				for m := startMin; m+block.SlotMinutes <= endMin; m += block.SlotMinutes {
					slotStart := day.At(m, loc)
					if !inWindow(window, slotStart) {
						continue
					}
					if overlapsTimeOff(offList, m, m+block.SlotMinutes) {
						continue
					}
					if booked.Has(domain.NewSlotKey(slotStart, &professionalID)) {
						continue
					}

					id := professionalID
					slots = append(slots, domain.Slot{
						StartAt:        slotStart,
						EndAt:          day.At(m+block.SlotMinutes, loc),
						ProfessionalID: &id,
					})
				}
			}
		}
	})

	return slots
}

// GenerateLegacySlots слоты по расписанию самой клиники, без специалистов
func GenerateLegacySlots(
	window domain.TimeWindow,
	schedule []domain.DaySchedule,
	slotMinutes int,
	booked BookedSet,
	loc *time.Location,
) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if window.IsEmpty() || slotMinutes <= 0 {
		return slots
	}

	clinic := domain.Clinic{WeeklySchedule: schedule}

	forEachDay(window, loc, func(day clinictime.Date) {
		daySchedule, ok := clinic.ScheduleFor(int(day.Weekday()))
		if !ok {
			return
		}

		for _, interval := range daySchedule.Intervals {
			startMin := interval.Start.Minutes()
			endMin := interval.End.Minutes()

			for m := startMin; m+slotMinutes <= endMin; m += slotMinutes {
				slotStart := day.At(m, loc)
				if !inWindow(window, slotStart) {
					continue
				}
				if booked.Has(domain.NewSlotKey(slotStart, nil)) {
					continue
				}

				slots = append(slots, domain.Slot{
					StartAt: slotStart,
					EndAt:   day.At(m+slotMinutes, loc),
				})
			}
		}
	})

	return slots
}

// forEachDay вызывает fn для каждой даты клиники, пересекающейся с окном
func forEachDay(window domain.TimeWindow, loc *time.Location, fn func(day clinictime.Date)) {
	first := clinictime.DateOf(window.From, loc)
	last := clinictime.DateOf(window.To.Add(-time.Nanosecond), loc)

	for day := first; !last.Before(day); day = day.AddDays(1) {
		fn(day)
	}
}

func inWindow(window domain.TimeWindow, start time.Time) bool {
	return !start.Before(window.From) && start.Before(window.To)
}

// overlapsTimeOff исключение без времени закрывает весь день, с временем - полуоткрытое пересечение
func overlapsTimeOff(offList []*domain.TimeOffException, startMin, endMin int) bool {
	for _, off := range offList {
		if off.IsWholeDay() {
			return true
		}
		if startMin < off.EndTime.Minutes() && endMin > off.StartTime.Minutes() {
			return true
		}
	}
	return false
}
