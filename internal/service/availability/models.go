package availability

import (
	"time"

	"github.com/m04kA/ClinicBookingService/internal/domain"
)

const (
	ModeProfessional = "professional"
	ModeLegacy       = "legacy"
)

// Query параметры расчета свободных слотов
type Query struct {
	Clinic         *domain.Clinic
	From           time.Time // включительно
	To             time.Time // не включительно
	ProfessionalID *int64
	SpecialtyID    *int64
}

// Result свободные слоты на момент запроса
type Result struct {
	Slots    []domain.Slot
	Mode     string
	Location *time.Location
}

// ProfessionalConfig блоки расписания одного специалиста
type ProfessionalConfig struct {
	ProfessionalID int64
	Blocks         []*domain.WeeklyAvailabilityBlock
}

type timeOffKey struct {
	professionalID int64
	date           string
}

// TimeOffIndex исключения расписания по (специалист, дата)
type TimeOffIndex map[timeOffKey][]*domain.TimeOffException

// NewTimeOffIndex строит индекс исключений
func NewTimeOffIndex(items []*domain.TimeOffException) TimeOffIndex {
	index := make(TimeOffIndex, len(items))
	for _, item := range items {
		key := timeOffKey{professionalID: item.ProfessionalID, date: item.Date}
		index[key] = append(index[key], item)
	}
	return index
}

func (idx TimeOffIndex) get(professionalID int64, date string) []*domain.TimeOffException {
	return idx[timeOffKey{professionalID: professionalID, date: date}]
}

// BookedSet занятые слоты
type BookedSet map[domain.SlotKey]struct{}

// NewBookedSet строит множество занятых слотов из подтвержденных записей
func NewBookedSet(appointments []*domain.Appointment) BookedSet {
	set := make(BookedSet, len(appointments))
	for _, a := range appointments {
		if !a.IsConfirmed() {
			continue
		}
		set[a.SlotKey()] = struct{}{}
	}
	return set
}

// Has проверяет, занят ли слот
func (s BookedSet) Has(key domain.SlotKey) bool {
	_, ok := s[key]
	return ok
}
